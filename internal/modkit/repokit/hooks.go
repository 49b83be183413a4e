package repokit

import (
	"context"
	"fmt"
)

// BeginHook prepares a fresh transaction before the repo writes through it;
// the postgres cache uses one for SET LOCAL statement_timeout
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns db with hooks run, in order, at the top of every Tx.
// Exec, Query and QueryRow outside a Tx reach db untouched
func WithBeginHooks(db TxRunner, hooks ...BeginHook) TxRunner {
	if len(hooks) == 0 {
		return db
	}
	return hooked{TxRunner: db, hooks: append([]BeginHook(nil), hooks...)}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

// Tx aborts with the first failing hook; fn never sees a half prepared tx
func (h hooked) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		if err := h.prepare(ctx, q); err != nil {
			return err
		}
		return fn(q)
	})
}

func (h hooked) prepare(ctx context.Context, q Queryer) error {
	for i, hook := range h.hooks {
		if err := hook(ctx, q); err != nil {
			return fmt.Errorf("begin hook %d of %d: %w", i+1, len(h.hooks), err)
		}
	}
	return nil
}

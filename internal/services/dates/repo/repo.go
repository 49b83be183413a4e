// Package repo provides the format cache repositories
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"datefmt/internal/modkit/repokit"
	perr "datefmt/internal/platform/errors"
	"datefmt/internal/platform/store"
)

// Table is the cache table name on every backend
const Table = "format_date_cache"

// Repo is the persistence surface for cached formatted strings
type Repo interface {
	Migrate(ctx context.Context) error
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Stats(ctx context.Context) (Stats, error)
	Purge(ctx context.Context) (int64, error)
}

// Stats is the size of the cache
type Stats struct {
	Entries int64
	Bytes   int64
}

// classify maps a driver error onto a perr code, e.g. perr.FromPostgres
type classify func(err error, msg string) error

// getOne reads a single value; no rows is a miss on every sql backend
func getOne(ctx context.Context, q repokit.Queryer, wrap classify, sql, key string) (string, bool, error) {
	v, err := store.One(ctx, q, store.ScanString, sql, key)
	if errors.Is(err, perr.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrap(err, "read "+Table)
	}
	return v, true, nil
}

// StatementTimeout bounds every postgres statement inside the tx
func StatementTimeout(d time.Duration) repokit.BeginHook {
	return func(ctx context.Context, q repokit.Queryer) error {
		if d <= 0 {
			return nil
		}
		_, err := q.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", d.Milliseconds()))
		return err
	}
}

// Transactional binds a repo whose writes run inside db.Tx so begin hooks apply
func Transactional(db repokit.TxRunner, b repokit.Binder[Repo]) Repo {
	return txRepo{Repo: repokit.MustBind(b, db), db: db, b: b}
}

type txRepo struct {
	Repo
	db repokit.TxRunner
	b  repokit.Binder[Repo]
}

func (t txRepo) Set(ctx context.Context, key, value string) error {
	return repokit.WithTx(ctx, t.db, func(q repokit.Queryer) error {
		return t.b.Bind(q).Set(ctx, key, value)
	})
}

func (t txRepo) Purge(ctx context.Context) (int64, error) {
	var n int64
	err := repokit.WithTx(ctx, t.db, func(q repokit.Queryer) error {
		var err error
		n, err = t.b.Bind(q).Purge(ctx)
		return err
	})
	return n, err
}

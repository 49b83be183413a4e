// Package store opens the SQL and columnar backends the format cache can
// live in and hands them out behind narrow seams
package store

import (
	"context"
	"errors"
	"fmt"

	"datefmt/internal/platform/logger"
)

// Store holds whichever backends Open enabled; the others stay nil.
// The zero value has no backends and closes cleanly
type Store struct {
	Log logger.Logger

	PG   TxRunner
	Lite TxRunner
	CH   Clickhouse
}

// Option adjusts a Store before any backend is opened
type Option func(*Store) error

// WithLogger hands log to the backend tracers
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

var (
	openPGFn   = openPG
	openLiteFn = openLite
	openCHFn   = openCH
)

// Open connects every backend enabled in cfg, postgres first. If one fails
// the ones already connected are closed before the error is returned
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	steps := []struct {
		on   bool
		open func() error
	}{
		{cfg.PG.Enabled, func() (err error) { s.PG, err = openPGFn(ctx, cfg, s); return }},
		{cfg.Lite.Enabled, func() (err error) { s.Lite, err = openLiteFn(ctx, cfg, s); return }},
		{cfg.CH.Enabled, func() (err error) { s.CH, err = openCHFn(ctx, cfg, s); return }},
	}
	for _, st := range steps {
		if !st.on {
			continue
		}
		if err := st.open(); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

type namedSeam struct {
	name string
	seam any
}

// open lists the backends Open connected, in open order
func (s *Store) open() []namedSeam {
	var out []namedSeam
	if s.PG != nil {
		out = append(out, namedSeam{"pg", s.PG})
	}
	if s.Lite != nil {
		out = append(out, namedSeam{"sqlite", s.Lite})
	}
	if s.CH != nil {
		out = append(out, namedSeam{"ch", s.CH})
	}
	return out
}

// Guard pings the open backends and joins the failures, each prefixed by
// its backend name
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, n := range s.open() {
		if p, ok := n.seam.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", n.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close shuts every open backend and joins the errors
func (s *Store) Close(_ context.Context) error {
	var errs []error
	for _, n := range s.open() {
		if c, ok := n.seam.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", n.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

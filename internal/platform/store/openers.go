package store

import (
	"context"

	chx "datefmt/internal/platform/store/ch"
	"datefmt/internal/platform/store/pg"
	"datefmt/internal/platform/store/sqlite"
	"datefmt/internal/platform/store/sqltrace"
)

// openPG opens pg, waits for the pool to answer and wraps it with our adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer sqltrace.QueryTracer
	if cfg.PG.LogSQL {
		tracer = sqltrace.Tracer(s.Log, "pg")
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:            cfg.PG.URL,
		MaxConns:       cfg.PG.MaxConns,
		SlowMs:         cfg.PG.SlowQueryMs,
		ConnectRetries: cfg.PG.ConnectRetries,
		PingTimeout:    cfg.PG.PingTimeout,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	// publish the adapter only after the pool is healthy
	if err := p.WaitReady(ctx); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

// openLite opens the sqlite file and wraps it with the retrying adapter
func openLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Lite.Path})
	if err != nil {
		return nil, err
	}
	em := sqltrace.Emitter{Backend: "sqlite", SlowMs: -1}
	if cfg.Lite.LogSQL {
		em.Tracer = sqltrace.Tracer(s.Log, "sqlite")
	}
	return newLiteAdapter(db, em), nil
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, Role: cfg.CH.Role, Tag: cfg.AppName})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}

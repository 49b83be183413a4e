// Package pg opens the pgxpool the postgres cache backend runs on and waits
// for it to answer
package pg

import (
	"context"
	"fmt"
	"time"

	"datefmt/internal/platform/store/sqltrace"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is the pool and boot probe setup; zero probe knobs take defaults
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int

	ConnectRetries int
	PingTimeout    time.Duration
}

const (
	defaultConnectRetries = 6
	defaultPingTimeout    = 3 * time.Second
	backoffStart          = 150 * time.Millisecond
	backoffCeiling        = 2 * time.Second
)

// PG is an open pool plus the tracer its adapter reports statements to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer sqltrace.QueryTracer
	SlowMs int

	retries     int
	pingTimeout time.Duration
}

var (
	newPool = pgxpool.NewWithConfig
	pingFn  = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
	sleepFn = time.Sleep
)

// Open parses cfg.URL and builds the pool without connecting. tune, when
// set, sees the parsed pool config last
func Open(ctx context.Context, cfg Config, tracer sqltrace.QueryTracer, tune func(*pgxpool.Config)) (*PG, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if tune != nil {
		tune(pc)
	}
	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	return &PG{
		Pool:        pool,
		Tracer:      tracer,
		SlowMs:      cfg.SlowMs,
		retries:     orDefault(cfg.ConnectRetries, defaultConnectRetries),
		pingTimeout: orDefault(cfg.PingTimeout, defaultPingTimeout),
	}, nil
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}

// WaitReady pings until the pool answers, doubling the pause between tries
// up to backoffCeiling. It gives up after the configured retries or when
// ctx ends
func (p *PG) WaitReady(ctx context.Context) error {
	var err error
	pause := backoffStart
	for range p.retries {
		if err = p.pingOnce(ctx); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		sleepFn(pause)
		pause = min(2*pause, backoffCeiling)
	}
	return fmt.Errorf("postgres ping failed after %d attempts: %w", p.retries, err)
}

func (p *PG) pingOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.pingTimeout)
	defer cancel()
	return pingFn(ctx, p.Pool)
}

// Close releases the pool; nil and unopened clients are fine
func (p *PG) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}

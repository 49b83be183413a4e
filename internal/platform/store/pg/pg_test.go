package pg

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"datefmt/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dsn = "postgres://u:p@h:5432/db?sslmode=disable"

func TestOpen_ParseError(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil, nil); err == nil {
		t.Fatalf("expected parse error, got nil")
	}
}

func TestOpen_NewPoolError(t *testing.T) {
	testkit.Serial(t)

	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})
	if _, err := Open(context.Background(), Config{URL: dsn}, nil, nil); err == nil {
		t.Fatalf("expected newPool error, got nil")
	}
}

func TestOpen_AppliesConfigAndDefaults(t *testing.T) {
	testkit.Serial(t)

	fake := &pgxpool.Pool{} // zero value, never closed
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return fake, nil
	})

	var mutCalled atomic.Bool
	p, err := Open(context.Background(), Config{URL: dsn, MaxConns: 7, SlowMs: 123}, nil, func(pc *pgxpool.Config) {
		mutCalled.Store(true)
		if pc.MaxConns != 7 {
			t.Fatalf("MaxConns not applied: got %d", pc.MaxConns)
		}
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !mutCalled.Load() {
		t.Fatalf("poolCfgMut was not invoked")
	}
	if p.SlowMs != 123 || p.retries != defaultConnectRetries || p.pingTimeout != defaultPingTimeout {
		t.Fatalf("unexpected client %+v", p)
	}
}

func TestWaitReady_RetriesThenSucceeds(t *testing.T) {
	testkit.Serial(t)

	var calls atomic.Int32
	testkit.Swap(t, &pingFn, func(context.Context, *pgxpool.Pool) error {
		if calls.Add(1) < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	var slept []time.Duration
	testkit.Swap(t, &sleepFn, func(d time.Duration) { slept = append(slept, d) })

	p := &PG{retries: 5, pingTimeout: time.Second}
	if err := p.WaitReady(context.Background()); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("ping calls = %d, want 3", calls.Load())
	}
	if len(slept) != 2 || slept[0] != backoffStart || slept[1] != 2*backoffStart {
		t.Fatalf("unexpected backoff %v", slept)
	}
}

func TestWaitReady_GivesUp(t *testing.T) {
	testkit.Serial(t)

	testkit.Swap(t, &pingFn, func(context.Context, *pgxpool.Pool) error { return errors.New("down") })
	testkit.Swap(t, &sleepFn, func(time.Duration) {})

	p := &PG{retries: 3, pingTimeout: time.Second}
	err := p.WaitReady(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	testkit.MustContain(t, err.Error(), "after 3 attempts")
}

func TestWaitReady_ContextCanceled(t *testing.T) {
	testkit.Serial(t)

	testkit.Swap(t, &pingFn, func(context.Context, *pgxpool.Pool) error { return errors.New("down") })
	testkit.Swap(t, &sleepFn, func(time.Duration) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &PG{retries: 3, pingTimeout: time.Second}
	if err := p.WaitReady(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()
	(&PG{}).Close()
}

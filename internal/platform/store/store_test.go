package store

import (
	"context"
	"errors"
	"testing"

	"datefmt/internal/platform/testkit"

	"github.com/rs/zerolog"
)

// fakeRunner satisfies TxRunner, Pinger and Close
type fakeRunner struct {
	pingErr  error
	closeErr error
	closed   bool
}

func (f *fakeRunner) Tx(_ context.Context, fn func(q RowQuerier) error) error { return fn(f) }
func (f *fakeRunner) Exec(context.Context, string, ...any) (CommandTag, error) {
	return liteTag{}, nil
}
func (f *fakeRunner) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (f *fakeRunner) QueryRow(context.Context, string, ...any) Row       { return nil }
func (f *fakeRunner) Ping(context.Context) error                         { return f.pingErr }
func (f *fakeRunner) Close() error                                       { f.closed = true; return f.closeErr }

// noPingRunner satisfies TxRunner only
type noPingRunner struct{}

func (noPingRunner) Tx(context.Context, func(q RowQuerier) error) error { return nil }
func (noPingRunner) Exec(context.Context, string, ...any) (CommandTag, error) {
	return liteTag{}, nil
}
func (noPingRunner) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (noPingRunner) QueryRow(context.Context, string, ...any) Row       { return nil }

func TestOpen_NothingEnabled(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{}, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.Lite != nil || s.CH != nil {
		t.Fatalf("expected no seams, got %+v", s)
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard on empty store: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close on empty store: %v", err)
	}
}

func TestOpen_OptionError(t *testing.T) {
	t.Parallel()

	bad := func(*Store) error { return errors.New("nope") }
	if _, err := Open(context.Background(), Config{}, bad); err == nil {
		t.Fatalf("expected option error")
	}
}

func TestOpen_PGBadURL(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true, URL: "://bad"}})
	if err == nil {
		t.Fatalf("expected pg parse error")
	}
}

func TestOpen_LiteFailureClosesPG(t *testing.T) {
	testkit.Serial(t)

	pg := &fakeRunner{}
	testkit.Swap(t, &openPGFn, func(context.Context, Config, *Store) (TxRunner, error) { return pg, nil })
	testkit.Swap(t, &openLiteFn, func(context.Context, Config, *Store) (TxRunner, error) {
		return nil, errors.New("disk full")
	})

	_, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true}, Lite: LiteConfig{Enabled: true}})
	if err == nil {
		t.Fatalf("expected lite error")
	}
	if !pg.closed {
		t.Fatalf("pg left open after partial failure")
	}
}

func TestOpen_LiteRealFile(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/cache.db"
	s, err := Open(context.Background(), Config{Lite: LiteConfig{Enabled: true, Path: path}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	if s.Lite == nil {
		t.Fatalf("Lite not set")
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard: %v", err)
	}
}

func TestGuard(t *testing.T) {
	t.Parallel()

	var nilStore *Store
	if err := nilStore.Guard(context.Background()); err == nil {
		t.Fatalf("nil store should error")
	}

	s := &Store{PG: &fakeRunner{pingErr: errors.New("pg down")}, Lite: noPingRunner{}}
	err := s.Guard(context.Background())
	if err == nil {
		t.Fatalf("expected guard error")
	}
	testkit.MustContain(t, err.Error(), "pg: pg down")

	ok := &Store{PG: &fakeRunner{}, Lite: &fakeRunner{}, CH: &clickhouseAdapter{inner: &fakeCH{}}}
	if err := ok.Guard(context.Background()); err != nil {
		t.Fatalf("Guard: %v", err)
	}
}

func TestClose_JoinsErrors(t *testing.T) {
	t.Parallel()

	pg := &fakeRunner{closeErr: errors.New("pg close")}
	lite := &fakeRunner{closeErr: errors.New("lite close")}
	s := &Store{PG: pg, Lite: lite}
	err := s.Close(context.Background())
	if err == nil {
		t.Fatalf("expected joined error")
	}
	testkit.MustContain(t, err.Error(), "pg close")
	testkit.MustContain(t, err.Error(), "lite close")
	if !pg.closed || !lite.closed {
		t.Fatalf("not every seam closed")
	}
}

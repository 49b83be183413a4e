package ch

import (
	"context"
	"errors"
	"testing"

	"datefmt/internal/platform/testkit"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// fakeConn overrides the handful of driver.Conn methods the client uses
type fakeConn struct {
	driver.Conn
	pingErr error
	batch   *fakeBatch
	execs   []string
	closed  bool
}

func (f *fakeConn) Ping(context.Context) error { return f.pingErr }
func (f *fakeConn) Close() error               { f.closed = true; return nil }
func (f *fakeConn) Exec(_ context.Context, q string, _ ...any) error {
	f.execs = append(f.execs, q)
	return nil
}
func (f *fakeConn) PrepareBatch(_ context.Context, q string, _ ...driver.PrepareBatchOption) (driver.Batch, error) {
	f.batch.query = q
	return f.batch, nil
}

type fakeBatch struct {
	driver.Batch
	query     string
	rows      [][]any
	appendErr error
	sent      bool
	aborted   bool
}

func (b *fakeBatch) Append(v ...any) error {
	if b.appendErr != nil {
		return b.appendErr
	}
	b.rows = append(b.rows, v)
	return nil
}
func (b *fakeBatch) Send() error  { b.sent = true; return nil }
func (b *fakeBatch) Abort() error { b.aborted = true; return nil }

func TestOpen_EmptyAndBadURL(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for empty url")
	}
	if _, err := Open(context.Background(), Config{URL: "clickhouse://%zz"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_StampsClientInfoAndPings(t *testing.T) {
	testkit.Serial(t)

	fc := &fakeConn{}
	var seen *clickhouse.Options
	testkit.Swap(t, &openConn, func(o *clickhouse.Options) (driver.Conn, error) {
		seen = o
		return fc, nil
	})

	c, err := Open(context.Background(), Config{URL: "clickhouse://u:p@localhost:9000/cache", Role: "api", Tag: "v1"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if seen == nil || len(seen.ClientInfo.Products) == 0 || seen.ClientInfo.Products[0].Name != "datefmt" {
		t.Fatalf("client info not stamped: %+v", seen)
	}
	if seen.Auth.Database != "cache" {
		t.Fatalf("database = %q", seen.Auth.Database)
	}
	if err := c.Close(); err != nil || !fc.closed {
		t.Fatalf("close not forwarded")
	}
}

func TestOpen_PingFailureCloses(t *testing.T) {
	testkit.Serial(t)

	fc := &fakeConn{pingErr: errors.New("refused")}
	testkit.Swap(t, &openConn, func(*clickhouse.Options) (driver.Conn, error) { return fc, nil })

	_, err := Open(context.Background(), Config{URL: "clickhouse://localhost:9000"})
	if err == nil {
		t.Fatalf("expected ping error")
	}
	testkit.MustContain(t, err.Error(), "ch: ping")
	if !fc.closed {
		t.Fatalf("connection leaked after failed ping")
	}
}

func TestInsert_BatchesRows(t *testing.T) {
	t.Parallel()

	b := &fakeBatch{}
	c := &CH{conn: &fakeConn{batch: b}}
	err := c.Insert(context.Background(), "format_date_cache", [][]any{{"k1", "v1"}, {"k2", "v2"}})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if b.query != "INSERT INTO format_date_cache" || len(b.rows) != 2 || !b.sent {
		t.Fatalf("unexpected batch %+v", b)
	}

	// empty input never prepares a batch
	if err := (&CH{conn: &fakeConn{}}).Insert(context.Background(), "t", nil); err != nil {
		t.Fatalf("empty insert: %v", err)
	}
}

func TestInsert_AppendErrorAborts(t *testing.T) {
	t.Parallel()

	b := &fakeBatch{appendErr: errors.New("bad column")}
	c := &CH{conn: &fakeConn{batch: b}}
	if err := c.Insert(context.Background(), "t", [][]any{{1}}); err == nil {
		t.Fatalf("expected append error")
	}
	if !b.aborted || b.sent {
		t.Fatalf("batch should be aborted, not sent")
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	ci := BuildClientInfo(" cli ", "dev")
	if len(ci.Products) != 5 {
		t.Fatalf("products = %d", len(ci.Products))
	}
	if ci.Products[1].Name != "role" || ci.Products[1].Version != "cli" {
		t.Fatalf("role not trimmed: %+v", ci.Products[1])
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var c *CH
	if err := c.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}

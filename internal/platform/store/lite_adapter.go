package store

import (
	"context"
	"database/sql"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	perr "datefmt/internal/platform/errors"
	"datefmt/internal/platform/store/sqltrace"
)

// retryPolicy bounds retries of transient sqlite failures
type retryPolicy struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

var (
	liteRetry = retryPolicy{maxRetries: 3, baseDelay: 50 * time.Millisecond, maxDelay: 500 * time.Millisecond}
	liteSleep = sleepCtx
)

// retry runs fn until it succeeds, fails permanently, or the policy runs out
// only lock and WAL contention errors are retried
func (p retryPolicy) retry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(); err == nil || !perr.IsTransientSQLite(err) || attempt >= p.maxRetries {
			return err
		}
		if serr := liteSleep(ctx, p.delay(attempt)); serr != nil {
			return errors.Join(err, serr)
		}
	}
}

// delay is base*2^attempt capped at max, plus up to base of jitter
func (p retryPolicy) delay(attempt int) time.Duration {
	d := min(p.baseDelay<<uint(attempt), p.maxDelay)
	return d + time.Duration(rand.Int64N(int64(p.baseDelay)))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// liteConn is the query surface *sql.DB and *sql.Tx share
type liteConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// liteQuerier traces statements on c. Outside a transaction each statement
// retries on contention; inside one the enclosing Tx owns retries
type liteQuerier struct {
	c      liteConn
	em     sqltrace.Emitter
	policy retryPolicy
}

func (q liteQuerier) Exec(ctx context.Context, stmt string, args ...any) (CommandTag, error) {
	start := time.Now()
	var res sql.Result
	err := q.policy.retry(ctx, func() (err error) {
		res, err = q.c.ExecContext(ctx, stmt, args...)
		return err
	})
	q.em.Emit(ctx, stmt, args, start, err)
	if err != nil {
		return nil, err
	}
	n, _ := res.RowsAffected()
	return liteTag{n: n}, nil
}

func (q liteQuerier) Query(ctx context.Context, stmt string, args ...any) (Rows, error) {
	start := time.Now()
	var rs *sql.Rows
	err := q.policy.retry(ctx, func() (err error) {
		rs, err = q.c.QueryContext(ctx, stmt, args...)
		return err
	})
	q.em.Emit(ctx, stmt, args, start, err)
	if err != nil {
		return nil, err
	}
	return liteRows{rs}, nil
}

// QueryRow reports the query error from Scan, as database/sql does
func (q liteQuerier) QueryRow(ctx context.Context, stmt string, args ...any) Row {
	rs, err := q.Query(ctx, stmt, args...)
	return liteRow{rows: rs, err: err}
}

// liteAdapter is the TxRunner over one sqlite file
type liteAdapter struct {
	liteQuerier
	db *sql.DB
}

func newLiteAdapter(db *sql.DB, em sqltrace.Emitter) *liteAdapter {
	return &liteAdapter{liteQuerier: liteQuerier{c: db, em: em, policy: liteRetry}, db: db}
}

func (a *liteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("sqlite: not open")
	}
	return a.db.PingContext(ctx)
}

func (a *liteAdapter) Close() error { return a.db.Close() }

// Tx reruns the whole transaction when begin, fn or commit hits contention
func (a *liteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return a.policy.retry(ctx, func() error {
		tx, err := a.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if err := fn(liteQuerier{c: tx, em: a.em}); err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit()
	})
}

type liteRow struct {
	rows Rows
	err  error
}

func (r liteRow) Scan(dst ...any) error {
	if r.err != nil {
		return r.err
	}
	defer r.rows.Close()
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}
	if err := r.rows.Scan(dst...); err != nil {
		return err
	}
	return r.rows.Err()
}

type liteRows struct{ *sql.Rows }

func (r liteRows) Close() { _ = r.Rows.Close() }

func (r liteRows) Columns() []string {
	cols, _ := r.Rows.Columns()
	return cols
}

// liteTag prints like a postgres command tag
type liteTag struct{ n int64 }

func (t liteTag) String() string      { return "SQLITE " + strconv.FormatInt(t.n, 10) }
func (t liteTag) RowsAffected() int64 { return t.n }

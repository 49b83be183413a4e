package repo

import (
	"context"
	"time"

	"datefmt/internal/modkit/repokit"
)

// CH is the clickhouse implementation; replacing merge keeps the newest row per key
type CH struct {
	c   repokit.Clickhouse
	now func() time.Time
}

// NewCH binds the clickhouse implementation to a client
func NewCH(c repokit.Clickhouse) *CH {
	if c == nil {
		panic("repo: NewCH requires a clickhouse client")
	}
	return &CH{c: c, now: time.Now}
}

// Migrate creates the cache table
func (r *CH) Migrate(ctx context.Context) error {
	const sql = `
		CREATE TABLE IF NOT EXISTS format_date_cache (
			key        String,
			value      String,
			written_at DateTime64(3, 'UTC')
		)
		ENGINE = ReplacingMergeTree(written_at)
		ORDER BY key
	`
	return r.c.Exec(ctx, sql)
}

// Get reads the latest value for key
func (r *CH) Get(ctx context.Context, key string) (string, bool, error) {
	rows, err := r.c.Query(ctx, `SELECT value FROM format_date_cache FINAL WHERE key = ? LIMIT 1`, key)
	if err != nil {
		return "", false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return "", false, rows.Err()
	}
	var v string
	if err := rows.Scan(&v); err != nil {
		return "", false, err
	}
	return v, true, rows.Err()
}

// Set appends a row; merges collapse duplicates in the background
func (r *CH) Set(ctx context.Context, key, value string) error {
	return r.c.Insert(ctx, Table, [][]any{{key, value, r.now().UTC()}})
}

// Stats counts distinct keys and active part bytes
func (r *CH) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	n, err := r.uint(ctx, `SELECT count() FROM format_date_cache FINAL`)
	if err != nil {
		return s, err
	}
	b, err := r.uint(ctx, `
		SELECT sum(bytes_on_disk) FROM system.parts
		WHERE database = currentDatabase() AND table = 'format_date_cache' AND active
	`)
	if err != nil {
		return s, err
	}
	s.Entries, s.Bytes = int64(n), int64(b)
	return s, nil
}

// Purge truncates the table and reports how many keys were dropped
func (r *CH) Purge(ctx context.Context) (int64, error) {
	n, err := r.uint(ctx, `SELECT count() FROM format_date_cache FINAL`)
	if err != nil {
		return 0, err
	}
	if err := r.c.Exec(ctx, `TRUNCATE TABLE IF EXISTS format_date_cache`); err != nil {
		return 0, err
	}
	return int64(n), nil
}

// Close releases the client
func (r *CH) Close() error { return r.c.Close() }

func (r *CH) uint(ctx context.Context, sql string) (uint64, error) {
	rows, err := r.c.Query(ctx, sql)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	var n uint64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	return n, rows.Err()
}

package repo

import (
	"context"

	"datefmt/internal/modkit/repokit"
	perr "datefmt/internal/platform/errors"
	"datefmt/internal/platform/store"
)

type (
	// SQLite is a binder for the embedded sqlite implementation
	SQLite        struct{}
	sqliteQueries struct{ q repokit.Queryer }
)

// NewSQLite returns a binder for the sqlite implementation
func NewSQLite() repokit.Binder[Repo] { return SQLite{} }

// Bind attaches a Queryer to the sqlite implementation
func (SQLite) Bind(q repokit.Queryer) Repo { return &sqliteQueries{q: q} }

func (r *sqliteQueries) Migrate(ctx context.Context) error {
	const sql = `
		CREATE TABLE IF NOT EXISTS format_date_cache (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			written_at INTEGER NOT NULL DEFAULT (unixepoch())
		) WITHOUT ROWID
	`
	_, err := r.q.Exec(ctx, sql)
	return perr.FromSQLite(err, "create "+Table)
}

func (r *sqliteQueries) Get(ctx context.Context, key string) (string, bool, error) {
	return getOne(ctx, r.q, perr.FromSQLite, `SELECT value FROM format_date_cache WHERE key = ?`, key)
}

func (r *sqliteQueries) Set(ctx context.Context, key, value string) error {
	const sql = `
		INSERT INTO format_date_cache (key, value, written_at)
		VALUES (?, ?, unixepoch())
		ON CONFLICT (key) DO UPDATE
		SET value      = excluded.value,
		    written_at = excluded.written_at
	`
	_, err := r.q.Exec(ctx, sql, key, value)
	return perr.FromSQLite(err, "write "+Table)
}

func (r *sqliteQueries) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	n, err := store.Scalar[int64](ctx, r.q, `SELECT count(*) FROM format_date_cache`)
	if err != nil {
		return s, perr.FromSQLite(err, "size "+Table)
	}
	s.Entries = n
	// whole database file; the cache is its only table
	b, err := store.Scalar[int64](ctx, r.q,
		`SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()`)
	if err != nil {
		return s, perr.FromSQLite(err, "size "+Table)
	}
	s.Bytes = b
	return s, nil
}

func (r *sqliteQueries) Purge(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM format_date_cache`)
	if err != nil {
		return 0, perr.FromSQLite(err, "purge "+Table)
	}
	return tag.RowsAffected(), nil
}

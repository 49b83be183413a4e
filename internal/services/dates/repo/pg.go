package repo

import (
	"context"

	"datefmt/internal/modkit/repokit"
	perr "datefmt/internal/platform/errors"
	"datefmt/internal/platform/store"
)

type (
	// PG is a binder for the postgres implementation
	PG        struct{}
	pgQueries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &pgQueries{q: q} }

func (r *pgQueries) Migrate(ctx context.Context) error {
	const sql = `
		CREATE TABLE IF NOT EXISTS format_date_cache (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			written_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	_, err := r.q.Exec(ctx, sql)
	return perr.FromPostgres(err, "create "+Table)
}

func (r *pgQueries) Get(ctx context.Context, key string) (string, bool, error) {
	return getOne(ctx, r.q, perr.FromPostgres, `SELECT value FROM format_date_cache WHERE key = $1`, key)
}

// Set is last write wins; concurrent writers store the same value
func (r *pgQueries) Set(ctx context.Context, key, value string) error {
	const sql = `
		INSERT INTO format_date_cache (key, value, written_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    written_at = EXCLUDED.written_at
	`
	_, err := r.q.Exec(ctx, sql, key, value)
	return perr.FromPostgres(err, "write "+Table)
}

func (r *pgQueries) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	n, err := store.Scalar[int64](ctx, r.q, `SELECT count(*) FROM format_date_cache`)
	if err != nil {
		return s, perr.FromPostgres(err, "size "+Table)
	}
	s.Entries = n
	b, err := store.Scalar[int64](ctx, r.q, `SELECT pg_total_relation_size('format_date_cache')`)
	if err != nil {
		return s, perr.FromPostgres(err, "size "+Table)
	}
	s.Bytes = b
	return s, nil
}

func (r *pgQueries) Purge(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM format_date_cache`)
	if err != nil {
		return 0, perr.FromPostgres(err, "purge "+Table)
	}
	return tag.RowsAffected(), nil
}

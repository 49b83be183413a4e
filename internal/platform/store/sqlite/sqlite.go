// Package sqlite opens a WAL-mode SQLite database through the pure Go
// modernc driver
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Config configures the database file and pool limits
type Config struct {
	Path         string
	MaxOpenConns int
	MaxIdleConns int
	ConnLifetime time.Duration
}

// pragmas favour concurrent readers with one writer
const pragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"

var openDB = sql.Open

// DSN returns the driver data source for path
func DSN(path string) string { return path + pragmas }

// Open creates the parent directory when needed, opens the database and
// verifies it answers
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: empty path")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create dir: %w", err)
		}
	}

	db, err := openDB("sqlite", DSN(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, 4))
	db.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, 2))
	db.SetConnMaxLifetime(orDefault(cfg.ConnLifetime, 30*time.Minute))

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return db, nil
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

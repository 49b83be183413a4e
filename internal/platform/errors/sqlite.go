package errors

// SQLite helpers: modernc.org/sqlite reports result codes inside the error text

import (
	"context"
	stderrs "errors"
	"strings"
)

var sqliteTransient = []string{
	"SQLITE_BUSY",
	"SQLITE_LOCKED",
	"IOERR_SHORT_READ",
	"database is locked",
	"database table is locked",
	"(5)",
	"(6)",
	"(522)",
}

// IsTransientSQLite reports whether err is a lock or WAL contention failure
// that may succeed on retry
func IsTransientSQLite(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	msg := Root(err).Error()
	for _, p := range sqliteTransient {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// FromSQLite wraps a sqlite error, classifying contention as unavailable
func FromSQLite(err error, msg string) error {
	if err == nil {
		return nil
	}
	if IsTransientSQLite(err) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

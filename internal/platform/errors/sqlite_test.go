package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"
)

func TestIsTransientSQLite(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"busy", stderrs.New("database is locked (5) (SQLITE_BUSY)"), true},
		{"locked table", stderrs.New("database table is locked"), true},
		{"short read", stderrs.New("disk I/O error (522)"), true},
		{"wrapped busy", fmt.Errorf("set: %w", stderrs.New("SQLITE_BUSY")), true},
		{"constraint", stderrs.New("UNIQUE constraint failed: format_date_cache.key"), false},
		{"canceled", context.Canceled, false},
	}
	for _, tc := range cases {
		if got := IsTransientSQLite(tc.err); got != tc.want {
			t.Fatalf("%s: IsTransientSQLite = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFromSQLite_Classifies(t *testing.T) {
	t.Parallel()

	if FromSQLite(nil, "x") != nil {
		t.Fatalf("FromSQLite(nil) should be nil")
	}
	if got := CodeOf(FromSQLite(stderrs.New("database is locked"), "get")); got != ErrorCodeUnavailable {
		t.Fatalf("busy code = %v, want Unavailable", got)
	}
	if got := CodeOf(FromSQLite(stderrs.New("no such table: x"), "get")); got != ErrorCodeDB {
		t.Fatalf("generic code = %v, want DB", got)
	}
}

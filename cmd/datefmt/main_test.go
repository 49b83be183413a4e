package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"datefmt/internal/core/calendar"
	"datefmt/internal/platform/testkit"
	"datefmt/internal/services/dates/domain"
	datesmod "datefmt/internal/services/dates/module"
)

func exec(t *testing.T, o datesmod.Options, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, &out, &errOut, o)
	return code, out.String(), errOut.String()
}

func mem() datesmod.Options {
	return datesmod.Options{Driver: datesmod.DriverMemory, Numeric: domain.NumericText}
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()
	if code, _, stderr := exec(t, mem()); code != 2 || !strings.Contains(stderr, "usage") {
		t.Fatalf("code %d stderr %q", code, stderr)
	}
	if code, _, _ := exec(t, mem(), "nope"); code != 2 {
		t.Fatalf("unknown command exit %d", code)
	}
}

func TestRun_Check(t *testing.T) {
	t.Parallel()
	code, out, _ := exec(t, mem(), "check", "2021-03-15", "hello")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines %q", lines)
	}
	testkit.MustContain(t, lines[1], "true")
	if strings.Contains(lines[2], "true") {
		t.Fatalf("hello classified as a date: %q", lines[2])
	}
}

func TestRun_Format(t *testing.T) {
	t.Parallel()
	code, out, stderr := exec(t, mem(), "format", "-f", "YYYY/MM/DD", "2021-03-15")
	if code != 0 || out != "2021/03/15\n" {
		t.Fatalf("exit %d out %q stderr %q", code, out, stderr)
	}

	want := calendar.Default().Format(time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC), "MMMM", "de")
	code, out, _ = exec(t, mem(), "format", "-f", "MMMM", "-locale", "de", "2021-03-15")
	if code != 0 || out != want+"\n" {
		t.Fatalf("locale: exit %d out %q", code, out)
	}

	code, out, _ = exec(t, mem(), "format", "-json", "null")
	if code != 0 || out != "null\n" {
		t.Fatalf("null: exit %d out %q", code, out)
	}

	code, out, _ = exec(t, mem(), "format", "-json", "-f", "YYYY", `["2020-01-01","2021-01-01"]`)
	if code != 0 || out != "[\"2020\",\"2021\"]\n" {
		t.Fatalf("array: exit %d out %q", code, out)
	}
}

func TestRun_FormatArgs(t *testing.T) {
	t.Parallel()
	if code, _, _ := exec(t, mem(), "format"); code != 2 {
		t.Fatalf("missing value exit %d", code)
	}
	if code, _, _ := exec(t, mem(), "format", "-json", "{"); code != 2 {
		t.Fatalf("bad json exit %d", code)
	}
	if code, _, _ := exec(t, mem(), "format", "-bogus", "x"); code != 2 {
		t.Fatalf("bad flag exit %d", code)
	}
}

func TestRun_Layouts(t *testing.T) {
	t.Parallel()
	code, out, _ := exec(t, mem(), "layouts")
	if code != 0 || !strings.Contains(out, "YYYY") {
		t.Fatalf("exit %d out %q", code, out)
	}
}

func TestRun_CacheStatsAndPurge(t *testing.T) {
	t.Parallel()
	o := datesmod.Options{
		Driver:     datesmod.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "cache.db"),
		Numeric:    domain.NumericText,
	}

	if code, _, stderr := exec(t, o, "format", "-f", "YYYY", "2021-03-15"); code != 0 {
		t.Fatalf("format exit %d: %s", code, stderr)
	}

	code, out, _ := exec(t, o, "cache", "stats")
	if code != 0 {
		t.Fatalf("stats exit %d", code)
	}
	testkit.MustContain(t, out, "driver  sqlite")
	testkit.MustContain(t, out, "entries 1")

	code, out, _ = exec(t, o, "cache", "purge")
	if code != 0 || out != "purged 1 entries\n" {
		t.Fatalf("purge exit %d out %q", code, out)
	}

	if code, _, _ := exec(t, o, "cache", "vacuum"); code != 2 {
		t.Fatalf("bad subcommand exit %d", code)
	}
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "datefmt/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type cacheState bool

func (c cacheState) Opened() bool { return bool(c) }

var started = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func get(t *testing.T, d Deps, path string, out any) int {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
	return rr.Code
}

func TestReady_SkipsMissingAndReportsIdleCache(t *testing.T) {
	t.Parallel()
	var out ReadyResponse
	code := get(t, Deps{Lite: pinger{}, Cache: cacheState(false), Driver: "sqlite"}, "/ready", &out)
	if code != stdhttp.StatusOK || out.Status != "ok" || out.Driver != "sqlite" {
		t.Fatalf("code %d out %+v", code, out)
	}
	want := map[string]string{"pg": "skipped", "sqlite": "ok", "ch": "skipped", "cache": "idle"}
	for _, c := range out.Checks {
		if want[c.Name] != c.Status {
			t.Fatalf("%s = %s, want %s", c.Name, c.Status, want[c.Name])
		}
	}
}

func TestReady_FailingSeamFails(t *testing.T) {
	t.Parallel()
	var out ReadyResponse
	get(t, Deps{PG: pinger{err: errors.New("refused")}, Cache: cacheState(true)}, "/ready", &out)
	if out.Status != "fail" {
		t.Fatalf("status %q", out.Status)
	}
	if out.Checks[0].Error != "refused" {
		t.Fatalf("checks %+v", out.Checks)
	}
}

func TestServiceAndVersion(t *testing.T) {
	t.Parallel()
	d := Deps{
		ServiceName: "datefmt-api",
		StartedAt:   started,
		Now:         func() time.Time { return started.Add(90 * time.Second) },
	}
	var svc ServiceResponse
	get(t, d, "/service", &svc)
	if svc.Uptime != 90 || svc.Name != "datefmt-api" {
		t.Fatalf("service %+v", svc)
	}

	var v struct {
		Service string `json:"service"`
		Version string `json:"version"`
	}
	get(t, d, "/version", &v)
	if v.Service != "datefmt-api" || v.Version == "" {
		t.Fatalf("version %+v", v)
	}

	var h HealthResponse
	get(t, d, "/health", &h)
	if !h.OK || h.Now != "2026-10-16T09:01:30Z" {
		t.Fatalf("health %+v", h)
	}
}

func TestReady_SeamWithoutPingIsUnknown(t *testing.T) {
	t.Parallel()
	var out ReadyResponse
	get(t, Deps{CH: struct{}{}}, "/ready", &out)
	if out.Status != StatusOK || out.Checks[2].Status != StatusUnknown {
		t.Fatalf("%+v", out)
	}
}

func TestSpec_AddsMetaPaths(t *testing.T) {
	t.Parallel()
	spec := map[string]any{}
	Spec(spec)
	if len(spec["paths"].(map[string]any)) != 4 {
		t.Fatalf("paths %v", spec["paths"])
	}
}

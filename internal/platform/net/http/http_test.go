package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"datefmt/internal/platform/config"
	perr "datefmt/internal/platform/errors"
	pnet "datefmt/internal/platform/net"
	"datefmt/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return env
}

func TestHandle_SuccessEnvelope(t *testing.T) {
	t.Parallel()
	h := Handle(func(*stdhttp.Request) Response {
		return Response{Body: map[string]string{"result": "2021/03/15"}, Header: stdhttp.Header{"X-Cache": {"hit"}}}
	})
	req := httptest.NewRequest(stdhttp.MethodPost, "/dates/format", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-7", "de"))
	rr := httptest.NewRecorder()
	h(rr, req)

	env := decode(t, rr)
	if rr.Code != 200 || env.StatusCode != 200 || env.Status != "OK" || env.RequestID != "rid-7" {
		t.Fatalf("envelope %+v", env)
	}
	if rr.Header().Get("X-Cache") != "hit" {
		t.Fatal("header not copied")
	}
	if rr.Header().Get("Content-Type") != "application/json; charset=utf-8" {
		t.Fatalf("content type %q", rr.Header().Get("Content-Type"))
	}
}

func TestHandle_ErrorEnvelope(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err    error
		status int
		field  string
	}{
		{perr.WithField(perr.InvalidArgf("argument locale has unexpected type int"), "locale"), 422, "locale"},
		{perr.Wrap(errors.New("locked"), perr.ErrorCodeUnavailable, "format cache get"), 503, ""},
		{errors.New("boom"), 500, ""},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		Handle(func(*stdhttp.Request) Response { return Error(c.err) })(rr, httptest.NewRequest("GET", "/", nil))
		env := decode(t, rr)
		if rr.Code != c.status || env.StatusCode != c.status || env.Field != c.field || env.Error == "" {
			t.Fatalf("%v: code %d envelope %+v", c.err, rr.Code, env)
		}
		if env.Data != nil {
			t.Fatalf("error envelope carries data: %+v", env)
		}
	}
}

func TestAdaptChi_RoutesAndMiddleware(t *testing.T) {
	t.Parallel()
	mux := chi.NewRouter()
	r := AdaptChi(mux)
	r.Use(func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set("X-Root", "1")
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api/v1", func(api Router) {
		api.Route("/dates", func(d Router) {
			d.Get("/layouts", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = io.WriteString(w, "layouts") })
			d.Post("/format", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusAccepted) })
		})
		api.Handle("/raw", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = io.WriteString(w, "raw") }))
	})

	cases := []struct {
		method, path string
		code         int
		body         string
	}{
		{"GET", "/api/v1/dates/layouts", 200, "layouts"},
		{"POST", "/api/v1/dates/format", 202, ""},
		{"GET", "/api/v1/dates/format", 405, ""},
		{"GET", "/api/v1/raw", 200, "raw"},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(c.method, c.path, nil))
		if rr.Code != c.code || (c.body != "" && rr.Body.String() != c.body) {
			t.Fatalf("%s %s: %d %q", c.method, c.path, rr.Code, rr.Body.String())
		}
		if rr.Header().Get("X-Root") != "1" {
			t.Fatalf("%s %s: root middleware skipped", c.method, c.path)
		}
	}
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()
	on := chi.NewRouter()
	MountProfiler(AdaptChi(on), "/debug", true)
	rr := httptest.NewRecorder()
	on.ServeHTTP(rr, httptest.NewRequest("GET", "/debug/pprof/cmdline", nil))
	if rr.Code != 200 {
		t.Fatalf("enabled: %d", rr.Code)
	}

	// symbol lookups are POSTs, and a trailing slash on the prefix is tolerated
	slash := chi.NewRouter()
	MountProfiler(AdaptChi(slash), "/debug/", true)
	rr = httptest.NewRecorder()
	slash.ServeHTTP(rr, httptest.NewRequest("POST", "/debug/pprof/symbol", strings.NewReader("")))
	if rr.Code != 200 {
		t.Fatalf("symbol post: %d", rr.Code)
	}

	off := chi.NewRouter()
	MountProfiler(AdaptChi(off), "/debug", false)
	rr = httptest.NewRecorder()
	off.ServeHTTP(rr, httptest.NewRequest("GET", "/debug/pprof/cmdline", nil))
	if rr.Code != 404 {
		t.Fatalf("disabled: %d", rr.Code)
	}
}

func TestServer_RunStopsWithContext(t *testing.T) {
	testkit.Serial(t)
	t.Setenv("CORE_API_PORT", "127.0.0.1:0")
	t.Setenv("CORE_API_SHUTDOWN_GRACE", "1s")

	hooked := false
	srv := NewServer(config.New().Prefix("CORE_API_"), func(*chi.Mux) { hooked = true })
	if !hooked || srv.Addr() != "127.0.0.1:0" {
		t.Fatalf("hooked=%v addr=%q", hooked, srv.Addr())
	}
	srv.Router().Get("/ping", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = io.WriteString(w, "pong") })

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/ping", nil))
	if rr.Body.String() != "pong" {
		t.Fatalf("handler body %q", rr.Body.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestServer_RunReportsListenError(t *testing.T) {
	testkit.Serial(t)
	t.Setenv("CORE_API_PORT", "127.0.0.1:abc")
	srv := NewServer(config.New().Prefix("CORE_API_"))
	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}

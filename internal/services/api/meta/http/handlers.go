// Package http serves liveness, readiness and build info under /meta
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"datefmt/internal/core/version"
	"datefmt/internal/modkit/httpkit"
)

// Pinger is satisfied by store seams that can answer a ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// CacheState reports whether the lazy format cache has been opened
type CacheState interface {
	Opened() bool
}

// Deps are the handler dependencies; nil seams report as skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	Lite        any
	CH          any
	Cache       CacheState
	Driver      string
	Now         func() time.Time
}

// readyTimeout bounds all pings of one readiness probe
const readyTimeout = 2 * time.Second

// Check statuses
const (
	StatusOK      = "ok"
	StatusFail    = "fail"
	StatusSkipped = "skipped"
	StatusIdle    = "idle"
	StatusUnknown = "unknown"
)

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck is the outcome for one dependency
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadyResponse fails when any check fails; idle and skipped are fine
type ReadyResponse struct {
	Status string       `json:"status"`
	Driver string       `json:"driver"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse reports uptime in whole seconds
type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

type handlers struct{ Deps }

// Register mounts GET /health, /ready, /version and /service
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Started: stamp(h.StartedAt), Now: stamp(h.Now())}, nil
}

func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	out := ReadyResponse{Status: StatusOK, Driver: h.Driver, Now: stamp(h.Now())}
	for _, seam := range []struct {
		name string
		dep  any
	}{{"pg", h.PG}, {"sqlite", h.Lite}, {"ch", h.CH}} {
		out.Checks = append(out.Checks, ping(ctx, seam.name, seam.dep))
	}
	// an unused cache is idle, not failing
	if h.Cache != nil {
		c := ReadyCheck{Name: "cache", Status: StatusIdle}
		if h.Cache.Opened() {
			c.Status = StatusOK
		}
		out.Checks = append(out.Checks, c)
	}
	for _, c := range out.Checks {
		if c.Status == StatusFail {
			out.Status = StatusFail
		}
	}
	return out, nil
}

func ping(ctx stdctx.Context, name string, dep any) ReadyCheck {
	if dep == nil {
		return ReadyCheck{Name: name, Status: StatusSkipped}
	}
	p, ok := dep.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: StatusUnknown}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: StatusFail, Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: StatusOK}
}

func (h handlers) version(*http.Request) (any, error) {
	return version.Info(h.ServiceName), nil
}

func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(h.Now().Sub(h.StartedAt) / time.Second),
	}, nil
}

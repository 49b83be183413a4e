// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "datefmt/internal/modkit"
	"datefmt/internal/modkit/httpkit"
	str "datefmt/internal/platform/strings"

	metahttp "datefmt/internal/services/api/meta/http"
)

// ServiceName is reported by the health and version endpoints
const ServiceName = "datefmt-api"

// Module implements the modkit.Module interface
type Module struct {
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	register  func(httpkit.Router)
	startedAt time.Time
}

// Ports are the optional collaborators the meta module reports on
type Ports struct {
	Cache  metahttp.CacheState
	Driver string
}

// New constructs a meta module with the provided dependencies and options
// pass modkit.WithPorts(Ports{...}) to include the format cache in readiness
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: time.Now(),
	}

	p, _ := b.Ports.(Ports)
	m.register = func(r httpkit.Router) {
		d := metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			Cache:       p.Cache,
			Driver:      p.Driver,
		}
		// typed nil seams must stay untyped nil so they report skipped
		if deps.PG != nil {
			d.PG = deps.PG
		}
		if deps.Lite != nil {
			d.Lite = deps.Lite
		}
		if deps.CH != nil {
			d.CH = deps.CH
		}
		metahttp.Register(r, d)
		b.Register(r)
	}

	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, m.register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix is where the routes mount, relative to the API root
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }

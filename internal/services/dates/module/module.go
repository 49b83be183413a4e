// Package module wires the date formatting service into the API
package module

import (
	"net/http"

	modkit "datefmt/internal/modkit"
	"datefmt/internal/modkit/httpkit"
	"datefmt/internal/platform/net/middleware"
	str "datefmt/internal/platform/strings"
	"datefmt/internal/services/dates/cache"
	"datefmt/internal/services/dates/domain"
	dateshttp "datefmt/internal/services/dates/http"
	"datefmt/internal/services/dates/service"
)

// Ports are what other modules and the binaries may use
type Ports struct {
	Service domain.ServicePort
	Dates   *service.Svc
	Cache   *cache.Handle
}

// Module implements the modkit.Module interface
type Module struct {
	opts     Options
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)
	ports    Ports
}

// New constructs the dates module; the cache is opened on first use
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("dates"),
		modkit.WithPrefix("/dates"),
		modkit.WithMiddlewares(defaultMiddlewares(o)...),
	}, opts...)...)

	h := cache.NewHandle(Opener(deps, o))
	svc := service.New(service.Options{
		Cache:    h,
		Numeric:  o.Numeric,
		Defaults: o.Defaults,
		FanOut:   o.FanOut,
	})

	return &Module{
		opts:   o,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		register: func(r httpkit.Router) {
			dateshttp.Register(r, svc)
			b.Register(r)
		},
		ports: Ports{Service: svc, Dates: svc, Cache: h},
	}
}

// bodies must be JSON; bodyless GETs pass through
func defaultMiddlewares(o Options) []func(http.Handler) http.Handler {
	mws := []func(http.Handler) http.Handler{middleware.AllowContentType("application/json")}
	if o.MaxInFlight > 0 {
		mws = append(mws, middleware.Throttle(o.MaxInFlight))
	}
	return mws
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, m.register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "dates") }

// Prefix is where the routes mount, relative to the API root
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }

// Driver reports the configured cache driver
func (m *Module) Driver() string { return m.opts.Driver }

// Close releases the cache backend if it was ever opened
func (m *Module) Close() error { return m.ports.Cache.Close() }

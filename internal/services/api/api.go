// Package api provides the HTTP API for the application
package api

import (
	"time"

	"datefmt/internal/platform/config"
	"datefmt/internal/platform/logger"
	phttp "datefmt/internal/platform/net/http"
	"datefmt/internal/platform/net/middleware"
	"datefmt/internal/platform/store"

	"datefmt/internal/modkit"
	"datefmt/internal/modkit/httpkit"
	"datefmt/internal/modkit/module"
	"datefmt/internal/modkit/swaggerkit"

	metahttp "datefmt/internal/services/api/meta/http"
	metamod "datefmt/internal/services/api/meta/module"
	dateshttp "datefmt/internal/services/dates/http"
	datesmod "datefmt/internal/services/dates/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         logger.Logger
	Dates          datesmod.Options
	Origins        []string
	SlowRequest    time.Duration
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
// the returned func releases the format cache and must run on shutdown
func Mount(r phttp.Router, opt Options) func() error {
	deps := modkit.FromStore(opt.Logger, opt.Config, opt.Store)

	dates := datesmod.New(deps, opt.Dates)
	ports := module.MustPortsOf[datesmod.Ports](dates)

	mods := []modkit.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{
			Cache:  ports.Cache,
			Driver: dates.Driver(),
		})),
		dates,
	}

	slow := opt.SlowRequest
	if slow <= 0 {
		slow = 500 * time.Millisecond
	}
	stack := httpkit.Stack(httpkit.StackOptions{Origins: opt.Origins, SlowRequest: slow})

	swaggerkit.Register(metahttp.Spec)
	swaggerkit.Register(dateshttp.Spec)

	// load balancer probe outside the versioned stack
	r.Use(middleware.Heartbeat("/health"))

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	return dates.Close
}

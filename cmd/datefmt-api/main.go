// Command datefmt-api serves the date classifier and formatter over HTTP
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"datefmt/internal/modkit/repokit"
	"datefmt/internal/platform/config"
	"datefmt/internal/platform/logger"
	phttp "datefmt/internal/platform/net/http"
	"datefmt/internal/platform/store"

	"datefmt/internal/services/api"
	datesmod "datefmt/internal/services/dates/module"
)

func main() {
	lo := logger.FromEnv()
	if lo.Service == "" {
		lo.Service = "datefmt-api"
	}
	logger.Init(lo)
	l := logger.Get()

	// service scoped config for HTTP (CORE_API_*) and the dates module (DATEFMT_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	datesOpts := datesmod.FromConfig(root)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// the cache opens lazily on first use unless asked to connect at boot
	var st *store.Store
	if root.MayBool("DATEFMT_CACHE_EAGER", false) && datesOpts.Driver != datesmod.DriverMemory {
		var err error
		st, err = store.Open(ctx, datesOpts.StoreConfig(), store.WithLogger(*l))
		if err != nil {
			l.Panic().Err(err).Str("driver", datesOpts.Driver).Msg("store.Open failed")
		}
		repokit.MustGuard(ctx, st)
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	closeAPI := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         *l,
			Dates:          datesOpts,
			Origins:        apiCfg.MayCSV("CORS_ORIGINS", nil),
			SlowRequest:    apiCfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)
	defer func() {
		if err := closeAPI(); err != nil {
			l.Error().Err(err).Msg("failed to close format cache")
		}
	}()

	// Run drains in-flight requests within CORE_API_SHUTDOWN_GRACE once ctx is done
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}

package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"datefmt/internal/platform/config"
	"datefmt/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the listener for one process
type Server struct {
	addr  string
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// NewServer reads PORT (default :4000) and SHUTDOWN_GRACE (default 10s)
// from cfg; each opt may mount routes or middleware on the mux
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	mux := chi.NewRouter()
	for _, apply := range opts {
		apply(mux)
	}
	s := &Server{
		addr:  cfg.MayString("PORT", ":4000"),
		mux:   mux,
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
	}
	s.srv = &stdhttp.Server{Addr: s.addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	return s
}

// Router is the chi mux behind the Router seam
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Handler is the raw mux, for httptest
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.addr }

// Run listens until ctx ends and then drains in-flight requests for at most
// the grace period. A listener that fails on its own is returned as is
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	served := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("listening")
		served <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-served:
		return ignoreClosed(err)
	case <-ctx.Done():
	}

	log.Info().Dur("grace", s.grace).Msg("draining")
	sctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	return ignoreClosed(<-served)
}

func ignoreClosed(err error) error {
	if errors.Is(err, stdhttp.ErrServerClosed) {
		return nil
	}
	return err
}

// Package http provides http transport for date classification and formatting
package http

import (
	stdhttp "net/http"

	"datefmt/internal/modkit/httpkit"
	"datefmt/internal/services/dates/domain"
)

// Register mounts the routes
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ClassifyInput](r, "/classify", h.classify)
	httpkit.PostJSON[domain.FormatInput](r, "/format", h.format)
	httpkit.PostJSON[domain.ResolveInput](r, "/resolve", h.resolve)
	httpkit.Get(r, "/layouts", h.layouts)
}

type handlers struct{ svc domain.ServicePort }

// classify is stateless; it never touches the cache
func (h *handlers) classify(r *stdhttp.Request, in domain.ClassifyInput) (any, error) {
	return h.svc.Classify(r.Context(), in)
}

func (h *handlers) format(r *stdhttp.Request, in domain.FormatInput) (any, error) {
	return h.svc.Format(r.Context(), in)
}

func (h *handlers) resolve(r *stdhttp.Request, in domain.ResolveInput) (any, error) {
	return h.svc.Resolve(r.Context(), in)
}

func (h *handlers) layouts(r *stdhttp.Request) (any, error) {
	return h.svc.Layouts(r.Context())
}

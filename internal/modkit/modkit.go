package modkit

import (
	phttp "datefmt/internal/platform/net/http"
)

// Module is the surface api.Mount needs from a feature module
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

package httpkit

import (
	"net/http"
	"strings"
)

// MountUnder hands mount a subrouter at prefix; mw wraps only that subtree,
// so one module's middleware never reaches its siblings
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/"+strings.Trim(prefix, "/"), func(sub Router) {
		sub.Use(mw...)
		mount(sub)
	})
}

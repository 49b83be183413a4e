// Package middleware adapts chi and go-chi/cors middleware so routers above
// this layer never import chi directly
package middleware

import (
	"net/http"
	"time"

	pstrings "datefmt/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Func is the net/http middleware shape every constructor here returns
type Func = func(http.Handler) http.Handler

// RequestID reuses an inbound X-Request-Id or mints one
func RequestID() Func { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP for RemoteAddr
func RealIP() Func { return chimw.RealIP }

// Timeout gives each request a context deadline of d
func Timeout(d time.Duration) Func { return chimw.Timeout(d) }

// NoCache marks every response uncacheable; formatted dates depend on "now"
func NoCache() Func { return chimw.NoCache }

// StripSlashes routes /dates/format/ like /dates/format
func StripSlashes() Func { return chimw.StripSlashes }

// Compress gzips responses at the given flate level
func Compress(level int) Func { return chimw.NewCompressor(level).Handler }

// AllowContentType answers 415 to request bodies of any other type
func AllowContentType(types ...string) Func { return chimw.AllowContentType(types...) }

// Throttle answers 429 while limit requests are already in flight
func Throttle(limit int) Func { return chimw.Throttle(limit) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Func { return chimw.Heartbeat(path) }

// CORSOptions is the subset of go-chi/cors the API configures
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Accept", "Accept-Language", "Content-Type", "X-Request-ID"}
)

// CORS applies o; unset methods and headers default to what the API serves
func CORS(o CORSOptions) Func {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   o.ExposedHeaders,
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

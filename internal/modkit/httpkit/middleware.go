package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"datefmt/internal/platform/net/middleware"
)

// StackOptions tunes the shared middleware stack
type StackOptions struct {
	// CORS origins, empty means same-origin only
	Origins []string
	// SlowRequest marks access log lines as warn, 0 disables
	SlowRequest time.Duration
	// Timeout cancels the request context, 0 means 30s
	Timeout time.Duration
}

// CommonStack returns a baseline per module middleware slice
func CommonStack() []func(http.Handler) http.Handler {
	return Stack(StackOptions{SlowRequest: 500 * time.Millisecond})
}

// Stack builds the shared middleware slice; the first element is outermost
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// correlation first so everything below logs with it
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.Language(),

		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.Origins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(timeout),
	}
}

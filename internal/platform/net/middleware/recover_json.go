package middleware

import (
	stdjson "encoding/json"
	stdhttp "net/http"
	"runtime/debug"

	perr "datefmt/internal/platform/errors"
	"datefmt/internal/platform/logger"
	pnet "datefmt/internal/platform/net"
)

// panicBody has the envelope's field names; this package sits below the envelope
type panicBody struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code"`
	Error      string         `json:"error"`
	RequestID  string         `json:"request_id,omitempty"`
}

// RecoverJSON answers a panicking handler with an enveloped 500 and logs
// the panic value with its stack
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			id := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("request_id", id).
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")
			writePanic(w, id)
		}()
		next.ServeHTTP(w, r)
	})
}

func writePanic(w stdhttp.ResponseWriter, id string) {
	const status = stdhttp.StatusInternalServerError
	wire := perr.WireFrom(perr.PanicErrf("panic recovered"))

	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	if id != "" {
		h.Set("X-Request-ID", id)
	}
	w.WriteHeader(status)
	_ = stdjson.NewEncoder(w).Encode(panicBody{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wire.Code,
		Error:      wire.Message,
		RequestID:  id,
	})
}

// Package http provides the router seam, server and the JSON response envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "datefmt/internal/platform/errors"
	pnet "datefmt/internal/platform/net"
)

// Envelope wraps every body the API writes. Successes carry Data; failures
// carry Code, Error and, for input errors, Field
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what return style handlers produce. A Body that is an error
// picks its own status from the error code
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK is a 200 carrying data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error is a failure response; the status comes from err's code
func Error(err error) Response { return Response{Body: err} }

// JSON writes v with status as utf-8 JSON
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Handle serves the Response h returns inside an Envelope
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		for k, vs := range resp.Header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		env := resp.envelope()
		env.RequestID = pnet.RequestID(r.Context())
		JSON(w, env.StatusCode, env)
	}
}

func (resp Response) envelope() Envelope {
	var env Envelope
	if err, ok := resp.Body.(error); ok && err != nil {
		wire := perr.WireFrom(err)
		env = Envelope{StatusCode: perr.HTTPStatus(err), Code: wire.Code, Error: wire.Message, Field: wire.Field}
	} else {
		env = Envelope{StatusCode: resp.Status, Data: resp.Body}
		if env.StatusCode == 0 {
			env.StatusCode = stdhttp.StatusOK
		}
	}
	env.Status = stdhttp.StatusText(env.StatusCode)
	return env
}

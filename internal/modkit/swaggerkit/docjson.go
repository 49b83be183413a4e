package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sync"

	"datefmt/internal/core/version"
	"datefmt/internal/platform/config"
	perr "datefmt/internal/platform/errors"
)

// SpecMutator adds a module's paths and schemas to the OpenAPI document
// the document is rebuilt per request, so mutators must be idempotent
type SpecMutator func(map[string]any)

var (
	mu       sync.RWMutex
	mutators []SpecMutator
)

// Register adds m; nil is ignored
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	mutators = append(mutators, m)
}

// Reset drops every registered mutator
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	mutators = nil
}

// baseDoc is the OAS 3.0 skeleton; http-swagger does not render 3.1
func baseDoc() map[string]any {
	title := "datefmt API"
	if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
		title += " " + v
	}
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       title,
			"description": "Classify and format date strings with a persistent format cache",
			"version":     version.Info("datefmt-api").Version,
		},
		"servers": []any{map[string]any{"url": "/api/v1"}},
		"paths":   map[string]any{},
	}
}

// buildDoc runs every mutator over a fresh skeleton then fills in the error
// responses any endpoint can produce
func buildDoc() map[string]any {
	spec := baseDoc()
	mu.RLock()
	for _, m := range mutators {
		m(spec)
	}
	mu.RUnlock()

	schemas := Child(Child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema()
	}
	for status, ex := range map[string]error{
		"400": perr.WithField(perr.New(perr.ErrorCodeValidation, "date is a required field"), "date"),
		"500": perr.PanicErrf("panic recovered"),
		"503": perr.Unavailablef("format cache get"),
	} {
		addDefaultResponse(spec, status, ex)
	}
	return spec
}

func serveDocJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(buildDoc())
}

// errorSchema mirrors the http envelope for failed requests
func errorSchema() map[string]any {
	s := Object(map[string]any{
		"status_code": Type("integer"),
		"status":      Type("string"),
		"code":        Type("integer"),
		"error":       Type("string"),
		"field":       Type("string"),
		"request_id":  Type("string"),
	}, "status_code", "status", "code", "error")
	s["description"] = "Error envelope"
	return s
}

// addDefaultResponse documents status on every operation that does not already
func addDefaultResponse(spec map[string]any, status string, example error) {
	w := perr.WireFrom(example)
	code := perr.HTTPStatusCode(w.Code)
	body := map[string]any{
		"status_code": code,
		"status":      http.StatusText(code),
		"code":        w.Code,
		"error":       w.Message,
	}
	if w.Field != "" {
		body["field"] = w.Field
	}
	resp := map[string]any{
		"description": http.StatusText(code),
		"content": map[string]any{"application/json": map[string]any{
			"schema":  Ref("ErrorResponse"),
			"example": body,
		}},
	}
	for _, item := range Child(spec, "paths") {
		ops, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			responses := Child(op, "responses")
			if _, ok := responses[status]; !ok {
				responses[status] = resp
			}
		}
	}
}

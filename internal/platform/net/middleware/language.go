package middleware

import (
	"net/http"

	"datefmt/internal/platform/logger"
	pnet "datefmt/internal/platform/net"

	"golang.org/x/text/language"
)

// Language stores the caller's most preferred Accept-Language tag on the
// request context and annotates the request logger with it and the request
// id; malformed headers are ignored. Mount after RequestID
func Language() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := preferred(r.Header.Get("Accept-Language"))
			ctx := r.Context()
			reqID := pnet.RequestID(ctx)
			ctx = pnet.WithRequest(ctx, "", tag)
			ctx = logger.WithRequest(ctx, reqID, tag)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// preferred returns the highest weighted tag, or "" when none parse
func preferred(header string) string {
	if header == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	if tags[0] == language.Und {
		return ""
	}
	return tags[0].String()
}

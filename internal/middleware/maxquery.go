package middleware

import (
	"net/http"
)

// NewMaxQueryHandler rejects requests whose raw query string is longer than
// limit bytes with 414 URI Too Long. Every endpoint is a GET driven by the
// query string, so this bounds the work a single search can cause.
// limit <= 0 disables the check.
func NewMaxQueryHandler(limit int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.RawQuery) > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestURITooLong)
				_, _ = w.Write([]byte(`{"error":{"code":"query_too_long","message":"query string too long"}}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

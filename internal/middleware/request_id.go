package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
)

type requestIDKey struct{}

// RequestID tags every request and response with a correlation id and makes
// it available downstream via FromContext. An id supplied by the admin
// frontend or an upstream proxy wins over a generated one.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get("X-Request-Id"))
			if id == "" {
				id = strings.TrimSpace(r.Header.Get("X-Correlation-Id"))
			}
			if id == "" {
				buf := make([]byte, 16)
				if _, err := rand.Read(buf); err == nil {
					id = hex.EncodeToString(buf)
				}
			}

			w.Header().Set("X-Request-Id", id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the correlation id RequestID stored, or "" when the
// middleware did not run.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

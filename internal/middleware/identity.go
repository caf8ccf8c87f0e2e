package middleware

import (
	"context"
	"net/http"
)

// UserID copies the authenticated user identity into the request context.
// Authentication itself happens upstream (gateway or reverse proxy); this
// service only consumes the resulting identifier.
func UserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid := r.Header.Get("X-User-ID"); uid != "" {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey, uid))
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext returns the authenticated user identifier, if any.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

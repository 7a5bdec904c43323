package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/product-store/internal/auth"
	rl "github.com/rogerio-castellano/product-store/internal/http/rate_limiter"
)

type contextKey string

const subjectKey = contextKey("subject")

// AuthMiddleware rejects requests without a valid bearer token. A nil
// authenticator disables the check.
func AuthMiddleware(a *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if a == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			sub, err := a.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Subject returns the authenticated user of r, or "anonymous" when auth is
// disabled.
func Subject(r *http.Request) string {
	if val, ok := r.Context().Value(subjectKey).(string); ok {
		return val
	}
	return "anonymous"
}

// RateLimitMiddleware throttles requests per client IP.
func RateLimitMiddleware(l *rl.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientIP(r)) {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"vocablearn/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserIDContextKey ContextKey = "user_id"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens      *security.TokenManager
	authLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.TokenManager, authLimiter *security.RateLimiter) *Middleware {
	return &Middleware{tokens: tokens, authLimiter: authLimiter}
}

// RequireAuth validates the bearer token and injects the user ID into context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondWithError(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, claims.UserID)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit throttles requests per client IP, for the auth endpoints
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.authLimiter.Allow(security.GetClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// UserIDFromContext retrieves the authenticated user ID, zero when absent
func UserIDFromContext(ctx context.Context) int64 {
	id, ok := ctx.Value(UserIDContextKey).(int64)
	if !ok {
		return 0
	}
	return id
}

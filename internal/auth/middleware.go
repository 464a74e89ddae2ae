package auth

import (
	"context"
	"net/http"

	"secretgate/internal/logging"
	"secretgate/internal/user"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	// UserContextKey holds the authenticated *user.User for gated routes
	UserContextKey ContextKey = "user"
)

// Middleware guards routes that require a logged-in user
type Middleware struct {
	sessions *Sessions
}

func NewMiddleware(sessions *Sessions) *Middleware {
	return &Middleware{sessions: sessions}
}

// RequireAuth resolves the session and redirects anonymous callers to the
// login page. The redirect is the same regardless of which gated resource was
// requested, so the response leaks nothing about what exists behind the gate.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.GetLoggerFromContext(r.Context())

		u, err := m.sessions.Resolve(r)
		if err != nil {
			logger.Error("failed to resolve session", "error", err.Error())
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		if u == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext extracts the authenticated user from the request context
func GetUserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(UserContextKey).(*user.User)
	return u, ok
}

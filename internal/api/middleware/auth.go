// Package middleware provides HTTP middleware for request validation,
// session checks, and logging.
package middleware

import (
	"net/http"
	"strings"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/response"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/auth"
)

// RequireSession verifies the bearer session token on every request it wraps.
// Missing, malformed, and expired tokens all get 401 with a session-expired
// body so the client always reacts the same way: return to login.
func RequireSession(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if err := manager.Verify(token); err != nil {
				response.RespondError(w, http.StatusUnauthorized, apperrors.ErrSessionExpired.Error(), "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

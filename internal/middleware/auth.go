// Package middleware provides HTTP middleware for authentication and
// request logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"splitledger/internal/auth"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// LoginKey is the context key for storing the authenticated user's login.
	LoginKey contextKey = "login"
)

// GetUserID extracts the user ID from the context.
// Returns zero if no authenticated user is present.
func GetUserID(ctx context.Context) int64 {
	id, _ := ctx.Value(UserIDKey).(int64)
	return id
}

// GetLogin extracts the user login from the context.
// Returns empty string if not found.
func GetLogin(ctx context.Context) string {
	login, _ := ctx.Value(LoginKey).(string)
	return login
}

// tokenFromRequest pulls the session token from the Authorization header
// (Bearer scheme) or, failing that, the session cookie.
func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireAuth returns middleware that validates session tokens and requires
// authentication. It adds the user ID and login to the request context.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				unauthorized(w, auth.ErrMissingToken)
				return
			}

			claims, err := jwtManager.Validate(token)
			if err != nil {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, LoginKey, claims.Login)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string][]string{"errors": {err.Error()}})
}

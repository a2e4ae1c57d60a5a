// Package middleware provides HTTP middleware for authentication, request
// logging and metrics.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/skitownrace/racereg/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// AccountIDKey is the context key for the authenticated account id.
	AccountIDKey contextKey = "account_id"
	// EmailKey is the context key for the authenticated account's email.
	EmailKey contextKey = "email"
)

// GetAccountID extracts the account id from the context.
// Returns 0 if not found.
func GetAccountID(ctx context.Context) int64 {
	id, _ := ctx.Value(AccountIDKey).(int64)
	return id
}

// GetEmail extracts the account email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// RequireAuth validates the bearer token and rejects unauthenticated
// requests. On success the account id and email are added to the request
// context.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromRequest(jwtManager, r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth validates the bearer token if present but allows requests
// without one. Useful for endpoints that behave differently for
// authenticated vs anonymous callers.
func OptionalAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, err := claimsFromRequest(jwtManager, r); err == nil {
				r = r.WithContext(withClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func claimsFromRequest(jwtManager *auth.JWTManager, r *http.Request) (*auth.Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, auth.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, auth.ErrInvalidToken
	}

	return jwtManager.Validate(parts[1])
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, AccountIDKey, claims.AccountID)
	return context.WithValue(ctx, EmailKey, claims.Email)
}

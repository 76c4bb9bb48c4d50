// Package middleware provides HTTP middleware for editor session
// authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// credentialKey is the context key for the authenticated GitHub credential.
const credentialKey ContextKey = "credential"

// TokenValidator is an interface for validating session tokens.
// This allows the middleware to work with any session service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (CredentialGetter, error)
}

// CredentialGetter is an interface for extracting the wrapped GitHub
// credential from token claims.
type CredentialGetter interface {
	GetCredential() string
}

// AuthMiddleware creates middleware that validates session tokens and
// adds the wrapped credential to the request context.
func AuthMiddleware(sessionService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Parse Bearer token, case-insensitive prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := sessionService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), credentialKey, claims.GetCredential())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCredential extracts the authenticated credential from the request context.
func GetCredential(r *http.Request) (string, error) {
	cred, ok := r.Context().Value(credentialKey).(string)
	if !ok {
		return "", fmt.Errorf("credential not found in request context")
	}
	return cred, nil
}

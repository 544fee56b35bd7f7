// Package api implements the jotter REST API using chi.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/starford/jotter/internal/auth"
)

// Authenticator verifies bearer tokens.
type Authenticator interface {
	Authenticate(token string) (auth.Identity, error)
}

type identityKey struct{}

// AuthMiddleware rejects requests without a verifiable bearer token.
// A missing token yields 403, a token that fails verification 401.
func AuthMiddleware(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeJSON(w, http.StatusForbidden, errorBody("a token is required for authentication"))
				return
			}
			id, err := authn.Authenticate(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody("invalid token"))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
		})
	}
}

// bearerToken returns the credential after the scheme, or "" when absent.
func bearerToken(header string) string {
	_, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// identity returns the caller set by AuthMiddleware.
func identity(r *http.Request) auth.Identity {
	id, _ := r.Context().Value(identityKey{}).(auth.Identity)
	return id
}

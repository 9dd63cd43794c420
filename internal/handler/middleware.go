package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/workpulse/workpulse/internal/domain"
	"github.com/workpulse/workpulse/internal/service"
)

type contextKey string

const principalContextKey contextKey = "principal"

// PrincipalFromContext extracts the authenticated principal from the
// request context. Returns nil if the request is unauthenticated.
func PrincipalFromContext(ctx context.Context) *service.Principal {
	principal, _ := ctx.Value(principalContextKey).(*service.Principal)
	return principal
}

// RequireAuth is middleware that protects routes requiring authentication.
// It reads the Bearer token from the Authorization header, validates the
// JWT, and injects the principal into the request context.
func RequireAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, typeUnauthorized, "No token provided")
			return
		}

		principal, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, typeTokenExpired, "Token expired")
				return
			}
			writeError(w, http.StatusUnauthorized, typeUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole is middleware that restricts a route to the given roles.
// It must run inside RequireAuth.
func RequireRole(next http.Handler, roles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFromContext(r.Context())
		if principal == nil {
			writeError(w, http.StatusUnauthorized, typeUnauthorized, "Authentication required")
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				next.ServeHTTP(w, r)
				return
			}
		}
		writeError(w, http.StatusForbidden, typeForbidden, "Insufficient permissions")
	})
}

// SecurityHeaders sets baseline security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// CORS allows cross-origin calls from the dashboard and the desktop agent
// (which sends no Origin header at all).
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Max-Age", "86400")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package httpapi

import (
	"context"
	"net/http"
	"strings"

	"posture-backend-go/internal/services"
)

type contextKey string

const ctxPrincipal contextKey = "principal"

// WithAuth verifies the bearer token and attaches the tagged principal to the
// request context. A missing token short-circuits with 403, a bad one with
// 401, before any handler logic runs. Actor-kind checks stay with the routes.
func WithAuth(tokens services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				WriteError(w, http.StatusForbidden, "Token not provided")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			principal, err := tokens.ParsePrincipal(tokenStr)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxPrincipal, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentPrincipal(r *http.Request) (services.Principal, bool) {
	principal, ok := r.Context().Value(ctxPrincipal).(services.Principal)
	return principal, ok
}

// RequireDevice rejects any principal that is not a device; an account token
// on a device route is a 401, never silently accepted.
func RequireDevice(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := CurrentPrincipal(r)
		if !ok || principal.Kind != services.PrincipalDevice || principal.Device == nil {
			WriteError(w, http.StatusUnauthorized, "Token is not a device token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := CurrentPrincipal(r)
		if !ok || principal.Kind != services.PrincipalAccount || principal.Account == nil {
			WriteError(w, http.StatusUnauthorized, "Token is not an account token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

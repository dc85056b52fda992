package middleware

import (
	"context"
	"net/http"

	"github.com/prajayganiga-design/Mini-project/internal/api/respond"
	"github.com/prajayganiga-design/Mini-project/internal/auth"
)

type contextKeyAuth string

const claimsKey contextKeyAuth = "authClaims"

// Authenticate validates the bearer token and stores the claims in the
// request context. The distinct 401 messages mirror what clients already
// branch on: header absent, header malformed, token rejected.
func Authenticate(manager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Error(w, r, http.StatusUnauthorized, "Authorization header missing", nil)
				return
			}

			token, err := auth.TokenFromHeader(header)
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "Invalid authorization header", err)
				return
			}

			claims, err := manager.Validate(token)
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "Invalid or expired token", err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates event mutation endpoints. Must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || !auth.IsAdmin(claims.Role) {
			respond.Error(w, r, http.StatusForbidden, "Admin privileges required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext returns the authenticated caller's claims, or nil on
// an unauthenticated request.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/stocka-io/stocka-api/internal/auth"
	"github.com/stocka-io/stocka-api/internal/models"
	"github.com/stocka-io/stocka-api/internal/services"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticate gates protected routes behind the access token. A missing
// Authorization header is 401; a present but invalid or expired token is 403.
// The guard never touches the session store — that only matters for refresh
// and logout.
func Authenticate(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token == "" {
				http.Error(w, "Authorization header must be a bearer token", http.StatusUnauthorized)
				return
			}

			identity, err := tokens.VerifyAccessToken(token)
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Access token rejected")
				http.Error(w, "Invalid or expired token", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the verified identity from context
func GetIdentity(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}

// RequirePermission gates a route on a tenant-scoped permission check for the
// authenticated identity's role. Store failures read as denial.
func RequirePermission(permissions *services.PermissionService, permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			allowed, err := permissions.Check(r.Context(), identity.RoleName, permission, identity.BusinessID)
			if err != nil {
				log.Error().Err(err).Str("permission", permission).Msg("Permission check failed")
				http.Error(w, "Permission denied", http.StatusForbidden)
				return
			}
			if !allowed {
				http.Error(w, "Permission denied", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

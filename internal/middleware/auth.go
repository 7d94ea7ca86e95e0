package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/rockymountnc/licensetracker/internal/httputil"
	"github.com/rockymountnc/licensetracker/internal/models"
	"github.com/rockymountnc/licensetracker/internal/service"
)

const UserKey = contextKey("user")

type AuthMiddleware struct {
	authService *service.AuthService
}

func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth resolves the bearer token to a stored user and places it in
// the request context. Missing, malformed, expired and revoked tokens all
// yield 401 with the uniform error schema.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := m.authService.AuthenticateBearer(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				httputil.WriteError(w, http.StatusUnauthorized, service.CodeUnauthorized, "authentication required", nil)
				return
			}
			httputil.WriteError(w, http.StatusInternalServerError, service.CodeInternalError, "failed to load user data", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireGroup wraps RequireAuth and additionally demands membership in
// the named role group.
func (m *AuthMiddleware) RequireGroup(group string, next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil || !user.InGroup(group) {
			httputil.WriteError(w, http.StatusForbidden, service.CodeForbidden, "insufficient permissions", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user stored by RequireAuth,
// or nil if the request is anonymous.
func UserFromContext(ctx context.Context) *models.User {
	if user, ok := ctx.Value(UserKey).(*models.User); ok {
		return user
	}
	return nil
}

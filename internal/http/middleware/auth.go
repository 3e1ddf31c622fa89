package middleware

import (
	"context"
	"net/http"
	"strings"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/user"
	"scholarhub/internal/http/response"
	"scholarhub/internal/security"
)

type contextKey string

const (
	ContextUserIDKey contextKey = "user_id"
	ContextRoleKey   contextKey = "role"
)

type AuthMiddleware struct {
	jwt *security.JWTProvider
}

func NewAuthMiddleware(jwt *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claimsFromRequest(r)
		if err != nil {
			response.Error(w, err)
			return
		}
		userID, err := common.ParseUUID(claims.UserID)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid user id", err))
			return
		}
		ctx := context.WithValue(r.Context(), ContextUserIDKey, userID)
		ctx = context.WithValue(ctx, ContextRoleKey, user.Role(strings.ToLower(claims.Role)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) claimsFromRequest(r *http.Request) (*security.Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		// Browsers cannot set headers on websocket dials; accept the token as
		// a query parameter there.
		if token := r.URL.Query().Get("token"); token != "" {
			claims, err := m.jwt.Parse(token)
			if err != nil {
				return nil, common.NewError(common.CodeUnauthorized, "invalid token", err)
			}
			return claims, nil
		}
		return nil, common.NewError(common.CodeUnauthorized, "missing authorization header", nil)
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, common.NewError(common.CodeUnauthorized, "invalid authorization header", nil)
	}
	claims, err := m.jwt.Parse(parts[1])
	if err != nil {
		return nil, common.NewError(common.CodeUnauthorized, "invalid token", err)
	}
	return claims, nil
}

func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			activeRole, ok := r.Context().Value(ContextRoleKey).(user.Role)
			if !ok || activeRole == "" {
				response.Error(w, common.NewError(common.CodeForbidden, "role not found", nil))
				return
			}
			for _, role := range roles {
				if activeRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
		})
	}
}

func UserIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(ContextUserIDKey).(common.UUID)
	return id, ok
}

func RoleFromContext(ctx context.Context) (user.Role, bool) {
	role, ok := ctx.Value(ContextRoleKey).(user.Role)
	return role, ok
}

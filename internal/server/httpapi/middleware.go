package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/meherkandukuri/vegtrack/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// UserIDFromCtx returns the authenticated user id, or 0 outside the auth
// middleware.
func UserIDFromCtx(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 0
}

// AuthMiddleware validates the bearer token and injects the user id into the
// request context.
func AuthMiddleware(authSvc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get(common.AuthorizationHeader)
			if !strings.HasPrefix(authz, common.BearerPrefix) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			claims, err := authSvc.ParseToken(strings.TrimPrefix(authz, common.BearerPrefix))
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

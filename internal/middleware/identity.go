package middleware

import (
	"context"
	"net/http"
)

// Headers set by the upstream gateway after it has verified the
// caller's credentials. This service never checks credentials itself.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// unexported, collision-proof context keys
type userIDContextKeyType struct{}
type userRoleContextKeyType struct{}

var (
	userIDKey   = userIDContextKeyType{}
	userRoleKey = userRoleContextKeyType{}
)

// IdentityFromContext extracts the authenticated caller from context.
func IdentityFromContext(ctx context.Context) (userID, role string, ok bool) {
	userID, okID := ctx.Value(userIDKey).(string)
	role, okRole := ctx.Value(userRoleKey).(string)
	return userID, role, okID && okRole
}

type IdentityMiddleware struct{}

func NewIdentityMiddleware() *IdentityMiddleware {
	return &IdentityMiddleware{}
}

// RequireIdentity rejects requests the gateway did not annotate with
// a verified caller, and attaches the identity to the context.
func (m *IdentityMiddleware) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserID)
		role := r.Header.Get(HeaderUserRole)

		if userID == "" || role == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package reqctx

import (
	"context"

	"github.com/google/uuid"
)

// AuthClaims is what request plumbing needs from a verified console token.
type AuthClaims interface {
	GetUserID() uuid.UUID
	// GetPrincipal names the console the token was issued for.
	GetPrincipal() string
	// GetStoreID is nil for superadmins.
	GetStoreID() *uuid.UUID
	IsExpired() bool
}

func WithClaims(ctx context.Context, claims AuthClaims) context.Context {
	return context.WithValue(ctx, keyClaims, claims)
}

// ClaimsFromContext returns nil for anonymous requests.
func ClaimsFromContext(ctx context.Context) AuthClaims {
	claims, _ := ctx.Value(keyClaims).(AuthClaims)
	return claims
}

func IsAuthenticated(ctx context.Context) bool {
	claims := ClaimsFromContext(ctx)
	return claims != nil && !claims.IsExpired()
}

// StoreScope returns the store the request acts on: the resolved public
// store first, then the store bound to an admin token.
func StoreScope(ctx context.Context) (uuid.UUID, bool) {
	if id, ok := StoreIDFromContext(ctx); ok {
		return id, true
	}
	if claims := ClaimsFromContext(ctx); claims != nil {
		if id := claims.GetStoreID(); id != nil && *id != uuid.Nil {
			return *id, true
		}
	}
	return uuid.Nil, false
}

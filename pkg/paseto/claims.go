package pasetotoken

import (
	"time"

	"github.com/google/uuid"
)

// Principal says which console a token was issued for.
type Principal string

const (
	PrincipalAdmin      Principal = "admin"
	PrincipalSuperadmin Principal = "superadmin"
)

// Subject is what a token is issued for.
type Subject struct {
	Principal Principal
	UserID    uuid.UUID
	Email     string
	// StoreID is set for store admins only.
	StoreID   *uuid.UUID
	SessionID uuid.UUID
}

// Claims is the app-facing token payload.
type Claims struct {
	Principal Principal

	UserID    uuid.UUID
	Email     string
	StoreID   *uuid.UUID
	SessionID *uuid.UUID

	Issuer    string
	Audience  string
	IssuedAt  time.Time
	ExpiresAt time.Time
	TokenID   string // jti
}

// GetUserID implements reqctx.AuthClaims.
func (c *Claims) GetUserID() uuid.UUID {
	return c.UserID
}

// GetPrincipal implements reqctx.AuthClaims.
func (c *Claims) GetPrincipal() string {
	return string(c.Principal)
}

// GetStoreID implements reqctx.AuthClaims.
func (c *Claims) GetStoreID() *uuid.UUID {
	return c.StoreID
}

// IsExpired implements reqctx.AuthClaims.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

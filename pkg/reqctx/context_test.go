package reqctx

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type fakeClaims struct {
	uid     uuid.UUID
	store   *uuid.UUID
	expired bool
}

func (f fakeClaims) GetUserID() uuid.UUID   { return f.uid }
func (f fakeClaims) GetPrincipal() string   { return "admin" }
func (f fakeClaims) GetStoreID() *uuid.UUID { return f.store }
func (f fakeClaims) IsExpired() bool        { return f.expired }

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q", got)
	}

	ctx = WithRequestMeta(ctx, &RequestMeta{RequestID: "req-1"})
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", got)
	}
}

func TestClaims(t *testing.T) {
	ctx := context.Background()
	if IsAuthenticated(ctx) {
		t.Error("IsAuthenticated(empty) = true")
	}

	uid := uuid.New()
	ctx = WithClaims(ctx, fakeClaims{uid: uid})
	if !IsAuthenticated(ctx) {
		t.Error("IsAuthenticated() = false")
	}
	if got := ClaimsFromContext(ctx).GetUserID(); got != uid {
		t.Errorf("ClaimsFromContext().GetUserID() = %v, want %v", got, uid)
	}

	if IsAuthenticated(WithClaims(context.Background(), fakeClaims{uid: uid, expired: true})) {
		t.Error("IsAuthenticated(expired) = true")
	}
}

func TestStoreID(t *testing.T) {
	ctx := context.Background()
	if _, ok := StoreIDFromContext(ctx); ok {
		t.Error("StoreIDFromContext(empty) reported a store")
	}
	if _, ok := StoreIDFromContext(WithStoreID(ctx, uuid.Nil)); ok {
		t.Error("nil store id should not count")
	}

	id := uuid.New()
	got, ok := StoreIDFromContext(WithStoreID(ctx, id))
	if !ok || got != id {
		t.Errorf("StoreIDFromContext() = %v, %v", got, ok)
	}
}

func TestStoreScope(t *testing.T) {
	tokenStore := uuid.New()
	publicStore := uuid.New()

	tests := []struct {
		name string
		ctx  context.Context
		want uuid.UUID
		ok   bool
	}{
		{"anonymous", context.Background(), uuid.Nil, false},
		{"superadmin token", WithClaims(context.Background(), fakeClaims{uid: uuid.New()}), uuid.Nil, false},
		{"admin token", WithClaims(context.Background(), fakeClaims{uid: uuid.New(), store: &tokenStore}), tokenStore, true},
		{"resolved store wins", WithStoreID(WithClaims(context.Background(), fakeClaims{store: &tokenStore}), publicStore), publicStore, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StoreScope(tt.ctx)
			if got != tt.want || ok != tt.ok {
				t.Errorf("StoreScope() = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

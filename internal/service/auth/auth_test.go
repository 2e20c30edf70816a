package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/melbooking/melbooking_backend/config"
	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/internal/repo/repotest"
	"github.com/melbooking/melbooking_backend/pkg/authorize"
	pasetotoken "github.com/melbooking/melbooking_backend/pkg/paseto"
	"github.com/melbooking/melbooking_backend/pkg/util/password"
)

type memSessions struct {
	mu   sync.Mutex
	ttl  map[uuid.UUID]time.Duration
	vals map[uuid.UUID]string
}

func newMemSessions() *memSessions {
	return &memSessions{ttl: map[uuid.UUID]time.Duration{}, vals: map[uuid.UUID]string{}}
}

func (m *memSessions) Save(_ context.Context, id uuid.UUID, principal string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[id], m.ttl[id] = principal, ttl
	return nil
}

func (m *memSessions) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.vals[id]
	return ok, nil
}

func (m *memSessions) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.vals[id]
	delete(m.vals, id)
	return ok, nil
}

var cheap = &password.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type fixture struct {
	admin    repo.Admin
	drv      *repotest.Driver
	sessions *memSessions
	svc      Service
}

func newFixture(t *testing.T, hash string) *fixture {
	t.Helper()
	m, err := pasetotoken.New(pasetotoken.Config{
		Mode: pasetotoken.ModeLocal, Issuer: "melbooking", Audience: "console", AccessTTL: time.Hour,
	}, pasetotoken.NewLocalKeys())
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{
		Authentication: config.AuthenticationConfig{SessionTTLMinutes: 720},
		Superadmin:     config.SuperadminConfig{Email: "root@melbooking.test", Password: "s3cret"},
		Password: config.PasswordConfig{
			MemoryKiB: cheap.Memory, Iterations: cheap.Iterations, Parallelism: cheap.Parallelism,
			SaltLength: cheap.SaltLength, KeyLength: cheap.KeyLength,
		},
	}

	f := &fixture{
		admin:    repo.Admin{ID: uuid.New(), Email: "owner@spa.test", HashedPassword: hash, StoreID: uuid.New(), Role: "owner"},
		sessions: newMemSessions(),
	}
	f.drv = &repotest.Driver{
		QueryFn: func(q string, args []any) ([][]any, error) {
			if repotest.From(q, "admins") && len(args) > 0 && args[0] == f.admin.Email {
				return [][]any{repotest.AdminRow(f.admin)}, nil
			}
			return nil, nil
		},
	}
	f.svc = New(repo.NewClient(f.drv), f.sessions, m, cfg)
	return f
}

func TestLoginAndAuthenticate(t *testing.T) {
	hash, err := password.HashWithParams("hunter22", cheap)
	if err != nil {
		t.Fatal(err)
	}
	f := newFixture(t, hash)
	ctx := context.Background()

	tok, err := f.svc.Login(ctx, LoginRequest{Email: " Owner@Spa.test ", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if tok.StoreID == nil || *tok.StoreID != f.admin.StoreID {
		t.Errorf("StoreID = %v, want %v", tok.StoreID, f.admin.StoreID)
	}
	if tok.ExpiresIn != int64(time.Hour.Seconds()) {
		t.Errorf("ExpiresIn = %d, want capped at the token TTL", tok.ExpiresIn)
	}
	if f.drv.Ran(`UPDATE "admins"`) {
		t.Error("current hash was rehashed")
	}

	claims, err := f.svc.Authenticate(ctx, tok.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if claims.Principal != pasetotoken.PrincipalAdmin || *claims.StoreID != f.admin.StoreID {
		t.Errorf("claims = %+v", claims)
	}
	if got := f.sessions.ttl[*claims.SessionID]; got != 12*time.Hour {
		t.Errorf("session ttl = %v, want 12h", got)
	}

	if err := f.svc.Logout(ctx, *claims.SessionID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := f.svc.Authenticate(ctx, tok.AccessToken); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Authenticate() after logout error = %v, want ErrSessionNotFound", err)
	}
	if err := f.svc.Logout(ctx, *claims.SessionID); err != nil {
		t.Errorf("second Logout() error = %v", err)
	}
}

func TestLoginRehashesLegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	f := newFixture(t, string(legacy))

	if _, err := f.svc.Login(context.Background(), LoginRequest{Email: "owner@spa.test", Password: "hunter22"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !f.drv.Ran(`UPDATE "admins"`, `"hashed_password"`) {
		t.Error("bcrypt hash was not upgraded")
	}
}

func TestLoginRejects(t *testing.T) {
	hash, _ := password.HashWithParams("hunter22", cheap)

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Email: "owner@spa.test", Password: "nope"}},
		{"unknown email", LoginRequest{Email: "ghost@spa.test", Password: "hunter22"}},
		{"blank", LoginRequest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, hash)
			if _, err := f.svc.Login(context.Background(), tt.req); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
			}
			if len(f.sessions.vals) != 0 {
				t.Error("session created for rejected login")
			}
		})
	}
}

func TestSuperadminLogin(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()

	tok, err := f.svc.SuperadminLogin(ctx, LoginRequest{Email: "ROOT@melbooking.test", Password: "s3cret"})
	if err != nil {
		t.Fatalf("SuperadminLogin() error = %v", err)
	}
	claims, err := f.svc.Authenticate(ctx, tok.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Principal != pasetotoken.PrincipalSuperadmin || claims.StoreID != nil {
		t.Errorf("claims = %+v", claims)
	}
	if claims.UserID != authorize.SuperadminPrincipalID("root@melbooking.test") {
		t.Error("superadmin principal id is not stable")
	}

	if _, err := f.svc.SuperadminLogin(ctx, LoginRequest{Email: "root@melbooking.test", Password: "guess"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v", err)
	}
}

func TestSuperadminPasswordHash(t *testing.T) {
	hash, _ := password.HashWithParams("s3cret", cheap)
	if !superadminPasswordOK(hash, "s3cret") || superadminPasswordOK(hash, "other") {
		t.Error("hashed superadmin password not verified")
	}
}

func TestAuthenticateGarbage(t *testing.T) {
	f := newFixture(t, "")
	if _, err := f.svc.Authenticate(context.Background(), "v4.local.garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Authenticate() error = %v, want ErrInvalidToken", err)
	}
}

package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/config"
	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/pkg/authorize"
	pasetotoken "github.com/melbooking/melbooking_backend/pkg/paseto"
	"github.com/melbooking/melbooking_backend/pkg/util/password"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthTokens struct {
	AccessToken string     `json:"access_token"`
	ExpiresIn   int64      `json:"expires_in"` // seconds
	StoreID     *uuid.UUID `json:"store_id,omitempty"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*AuthTokens, error)
	SuperadminLogin(ctx context.Context, req LoginRequest) (*AuthTokens, error)
	// Authenticate verifies a bearer token and that its session is live.
	Authenticate(ctx context.Context, token string) (*pasetotoken.Claims, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type authService struct {
	db       *repo.Client
	sessions Sessions
	paseto   *pasetotoken.Manager
	hasher   *password.Hasher
	cfg      *config.Config
}

func New(db *repo.Client, sessions Sessions, paseto *pasetotoken.Manager, cfg *config.Config) Service {
	return &authService{
		db:       db,
		sessions: sessions,
		paseto:   paseto,
		hasher:   password.NewHasher(password.FromCentralConfig(cfg.Password)),
		cfg:      cfg,
	}
}

// NormaliseEmail is the canonical form emails are stored and compared in.
func NormaliseEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func (s *authService) sessionTTL() time.Duration {
	ttl := time.Duration(s.cfg.Authentication.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return ttl
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthTokens, error) {
	email := NormaliseEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	a, err := s.db.Admin.GetByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if err := s.hasher.Verify(a.HashedPassword, req.Password); err != nil {
		slog.InfoContext(ctx, "admin login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	// Move legacy bcrypt and weaker argon2 hashes to the current params.
	if s.hasher.NeedsRehash(a.HashedPassword) {
		if h, err := s.hasher.Hash(req.Password); err == nil {
			if err := s.db.Admin.UpdatePassword(ctx, email, h); err != nil {
				slog.WarnContext(ctx, "password rehash failed", "email", email, "error", err)
			}
		}
	}

	storeID := a.StoreID
	return s.createSession(ctx, pasetotoken.Subject{
		Principal: pasetotoken.PrincipalAdmin,
		UserID:    a.ID,
		Email:     a.Email,
		StoreID:   &storeID,
	})
}

func (s *authService) SuperadminLogin(ctx context.Context, req LoginRequest) (*AuthTokens, error) {
	want := s.cfg.Superadmin
	if want.Email == "" || want.Password == "" {
		return nil, ErrSuperadminDisabled
	}
	email := NormaliseEmail(req.Email)
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(NormaliseEmail(want.Email))) == 1
	if !emailOK || !superadminPasswordOK(want.Password, req.Password) {
		slog.WarnContext(ctx, "superadmin login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, pasetotoken.Subject{
		Principal: pasetotoken.PrincipalSuperadmin,
		UserID:    authorize.SuperadminPrincipalID(email),
		Email:     email,
	})
}

// superadminPasswordOK accepts either a stored hash or a plain secret from
// config.
func superadminPasswordOK(configured, given string) bool {
	if strings.HasPrefix(configured, "$argon2id$") || strings.HasPrefix(configured, "$2") {
		return password.Match(configured, given)
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(given)) == 1
}

// ---------------------------------------------------------------------------
// Authenticate / Logout
// ---------------------------------------------------------------------------

func (s *authService) Authenticate(ctx context.Context, token string) (*pasetotoken.Claims, error) {
	claims, err := s.paseto.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.SessionID == nil {
		return nil, ErrInvalidToken
	}
	ok, err := s.sessions.Exists(ctx, *claims.SessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionNotFound
	}
	return claims, nil
}

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	deleted, err := s.sessions.Delete(ctx, sessionID)
	if err != nil {
		return err
	}
	if !deleted {
		// Already expired; not an error from the client's perspective.
		slog.DebugContext(ctx, "logout: session not found", "session_id", sessionID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *authService) createSession(ctx context.Context, sub pasetotoken.Subject) (*AuthTokens, error) {
	sub.SessionID = uuid.Must(uuid.NewV7())
	ttl := s.sessionTTL()

	if err := s.sessions.Save(ctx, sub.SessionID, string(sub.Principal)+":"+sub.UserID.String(), ttl); err != nil {
		return nil, err
	}
	tok, err := s.paseto.Issue(sub)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	expiresIn := min(ttl, s.paseto.AccessTTL())
	slog.InfoContext(ctx, "console session started",
		"principal", sub.Principal, "user_id", sub.UserID, "session_id", sub.SessionID)
	return &AuthTokens{
		AccessToken: tok,
		ExpiresIn:   int64(expiresIn.Seconds()),
		StoreID:     sub.StoreID,
	}, nil
}

package pasetotoken

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	paseto "aidanwoods.dev/go-paseto"
	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/config"
)

const defaultAccessTTL = 12 * time.Hour

// Claim keys beyond the registered ones.
const (
	claimPrincipal = "prn"
	claimUser      = "uid"
	claimSession   = "sid"
	claimEmail     = "eml"
	claimStore     = "sto"
)

type Config struct {
	Mode Mode

	Issuer   string
	Audience string

	AccessTTL time.Duration

	// Implicit is bound into every token without being transmitted.
	Implicit []byte
}

// codec seals and opens tokens for one key mode.
type codec interface {
	seal(tok paseto.Token, implicit []byte) string
	open(p paseto.Parser, token string, implicit []byte) (*paseto.Token, error)
}

type localCodec struct{ key paseto.V4SymmetricKey }

func (c localCodec) seal(tok paseto.Token, implicit []byte) string {
	return tok.V4Encrypt(c.key, implicit)
}

func (c localCodec) open(p paseto.Parser, token string, implicit []byte) (*paseto.Token, error) {
	return p.ParseV4Local(c.key, token, implicit)
}

// publicCodec verifies with pub; secret is nil on verify-only services.
type publicCodec struct {
	secret *paseto.V4AsymmetricSecretKey
	pub    paseto.V4AsymmetricPublicKey
}

func (c publicCodec) seal(tok paseto.Token, implicit []byte) string {
	return tok.V4Sign(*c.secret, implicit)
}

func (c publicCodec) open(p paseto.Parser, token string, implicit []byte) (*paseto.Token, error) {
	return p.ParseV4Public(c.pub, token, implicit)
}

// Manager issues and verifies the console access tokens.
type Manager struct {
	cfg     Config
	codec   codec
	canSeal bool
	parser  paseto.Parser
}

func New(cfg Config, keys Keys) (*Manager, error) {
	if cfg.Mode != keys.Mode {
		return nil, ErrConfig{Msg: fmt.Sprintf("config mode %q does not match key mode %q", cfg.Mode, keys.Mode)}
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, ErrConfig{Msg: "issuer and audience are required"}
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}

	m := &Manager{cfg: cfg, parser: paseto.NewParser()}
	m.parser.AddRule(paseto.IssuedBy(cfg.Issuer))
	m.parser.AddRule(paseto.ForAudience(cfg.Audience))
	m.parser.AddRule(paseto.NotExpired())

	switch keys.Mode {
	case ModeLocal:
		if keys.Symmetric == nil {
			return nil, ErrConfig{Msg: "local mode", Err: ErrMissingKey}
		}
		m.codec, m.canSeal = localCodec{key: *keys.Symmetric}, true
	case ModePublic:
		if keys.Public == nil {
			return nil, ErrConfig{Msg: "public mode", Err: ErrMissingKey}
		}
		m.codec, m.canSeal = publicCodec{secret: keys.Secret, pub: *keys.Public}, keys.Secret != nil
	default:
		return nil, ErrConfig{Msg: "unknown mode " + string(keys.Mode)}
	}
	return m, nil
}

// NewPasetoManager builds the manager from authentication.paseto.
func NewPasetoManager(cfg *config.Config) (*Manager, error) {
	p := cfg.Authentication.Paseto
	keys, err := LoadKeys(KeyStrings{
		Mode:         Mode(p.Mode),
		SymmetricHex: p.LocalKeyHex,
		SecretHex:    p.SecretKeyHex,
		PublicHex:    p.PublicKeyHex,
	})
	if err != nil {
		return nil, err
	}
	return New(Config{
		Mode:      Mode(p.Mode),
		Issuer:    p.Issuer,
		Audience:  p.Audience,
		AccessTTL: time.Duration(p.AccessTTLMinutes) * time.Minute,
	}, keys)
}

func (m *Manager) AccessTTL() time.Duration {
	return m.cfg.AccessTTL
}

// Issue mints a token for s valid for AccessTTL.
func (m *Manager) Issue(s Subject) (string, error) {
	if !m.canSeal {
		return "", ErrConfig{Msg: "verify-only manager cannot issue", Err: ErrMissingKey}
	}
	if s.UserID == uuid.Nil {
		return "", ErrConfig{Msg: "subject user id is required"}
	}

	now := time.Now()
	tok := paseto.NewToken()
	tok.SetIssuer(m.cfg.Issuer)
	tok.SetAudience(m.cfg.Audience)
	tok.SetJti(randHex(16))
	tok.SetIssuedAt(now)
	tok.SetNotBefore(now)
	tok.SetExpiration(now.Add(m.cfg.AccessTTL))
	tok.SetSubject(s.UserID.String())

	tok.SetString(claimPrincipal, string(s.Principal))
	tok.SetString(claimUser, s.UserID.String())
	tok.SetString(claimSession, s.SessionID.String())
	if s.Email != "" {
		tok.SetString(claimEmail, s.Email)
	}
	if s.StoreID != nil {
		tok.SetString(claimStore, s.StoreID.String())
	}
	return m.codec.seal(tok, m.cfg.Implicit), nil
}

// Verify opens token and checks issuer, audience, expiry and the
// principal/store pairing. Every failure is an ErrInvalidToken.
func (m *Manager) Verify(token string) (*Claims, error) {
	tok, err := m.codec.open(m.parser, token, m.cfg.Implicit)
	if err != nil {
		return nil, ErrInvalidToken{Err: err}
	}
	claims, err := extractClaims(tok, m.cfg.Issuer, m.cfg.Audience)
	if err != nil {
		return nil, ErrInvalidToken{Err: err}
	}
	return claims, nil
}

func randHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func extractClaims(tok *paseto.Token, iss, aud string) (*Claims, error) {
	out := &Claims{Issuer: iss, Audience: aud}
	var err error
	if out.TokenID, err = tok.GetJti(); err != nil {
		return nil, err
	}
	if out.IssuedAt, err = tok.GetIssuedAt(); err != nil {
		return nil, err
	}
	if out.ExpiresAt, err = tok.GetExpiration(); err != nil {
		return nil, err
	}

	prn, err := tok.GetString(claimPrincipal)
	if err != nil {
		return nil, err
	}
	switch p := Principal(prn); p {
	case PrincipalAdmin, PrincipalSuperadmin:
		out.Principal = p
	default:
		return nil, fmt.Errorf("unknown principal %q", prn)
	}

	if out.UserID, err = uuidClaim(tok, claimUser); err != nil {
		return nil, err
	}
	sid, err := uuidClaim(tok, claimSession)
	if err != nil {
		return nil, err
	}
	out.SessionID = &sid

	if eml, err := tok.GetString(claimEmail); err == nil {
		out.Email = eml
	}
	if _, err := tok.GetString(claimStore); err == nil {
		sto, err := uuidClaim(tok, claimStore)
		if err != nil {
			return nil, err
		}
		out.StoreID = &sto
	}

	switch {
	case out.Principal == PrincipalAdmin && out.StoreID == nil:
		return nil, errors.New("admin token without store")
	case out.Principal == PrincipalSuperadmin && out.StoreID != nil:
		return nil, errors.New("superadmin token bound to a store")
	}
	return out, nil
}

func uuidClaim(tok *paseto.Token, key string) (uuid.UUID, error) {
	s, err := tok.GetString(key)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("claim %s: %w", key, err)
	}
	return id, nil
}

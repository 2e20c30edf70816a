// Package store is the superadmin side of the platform: stores, their
// public booking links and the admins that run them.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/pkg/authorize"
	"github.com/melbooking/melbooking_backend/pkg/util/password"
)

const (
	StatusActive = "active"

	minPasswordLen = 8
	qrSize         = 256
)

var (
	reSlugSeparators = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	reEmail          = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Slugify lower-cases name and joins its alphanumeric runs with "-".
func Slugify(name string) string {
	return strings.ToLower(strings.Trim(reSlugSeparators.ReplaceAllString(name, "-"), "-"))
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type StoreView struct {
	*repo.Store
	BookingURL string `json:"booking_url"`
}

type CreateAdminRequest struct {
	Email    string    `json:"email"`
	Password string    `json:"password"`
	StoreID  uuid.UUID `json:"store_id"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	// Resolve finds a store by UUID or, failing that, by slug.
	Resolve(ctx context.Context, ref string) (*repo.Store, error)

	ListStores(ctx context.Context) ([]StoreView, error)
	CreateStore(ctx context.Context, name string) (*StoreView, error)
	BookingQR(ctx context.Context, storeID uuid.UUID) ([]byte, error)

	ListAdmins(ctx context.Context) ([]*repo.Admin, error)
	CreateAdmin(ctx context.Context, req CreateAdminRequest) (*repo.Admin, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	ChangeStore(ctx context.Context, email string, storeID uuid.UUID) error
	DeleteAdmin(ctx context.Context, email string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type storeService struct {
	db         *repo.Client
	auth       authorize.IAuthorization
	hasher     *password.Hasher
	bookingURL string
}

func New(db *repo.Client, auth authorize.IAuthorization, hasher *password.Hasher, bookingURL string) Service {
	return &storeService{db: db, auth: auth, hasher: hasher, bookingURL: bookingURL}
}

func (s *storeService) Resolve(ctx context.Context, ref string) (*repo.Store, error) {
	ref = strings.TrimSpace(ref)
	var (
		st  *repo.Store
		err error
	)
	if id, perr := uuid.Parse(ref); perr == nil {
		st, err = s.db.Store.Get(ctx, id)
	} else {
		st, err = s.db.Store.GetBySlug(ctx, strings.ToLower(ref))
	}
	if repo.IsNotFound(err) {
		return nil, ErrStoreNotFound
	}
	return st, err
}

func (s *storeService) get(ctx context.Context, id uuid.UUID) (*repo.Store, error) {
	st, err := s.db.Store.Get(ctx, id)
	if repo.IsNotFound(err) {
		return nil, ErrStoreNotFound
	}
	return st, err
}

// BookingURL is the public booking page of a store.
func (s *storeService) BookingURL(st *repo.Store) string {
	return s.bookingURL + "?store_slug=" + url.QueryEscape(st.Slug)
}

func (s *storeService) ListStores(ctx context.Context) ([]StoreView, error) {
	stores, err := s.db.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StoreView, 0, len(stores))
	for _, st := range stores {
		out = append(out, StoreView{Store: st, BookingURL: s.BookingURL(st)})
	}
	return out, nil
}

func (s *storeService) CreateStore(ctx context.Context, name string) (*StoreView, error) {
	name = strings.TrimSpace(name)
	slug := Slugify(name)
	if slug == "" {
		return nil, ErrStoreNameRequired
	}

	st := &repo.Store{Name: name, Slug: slug, Status: StatusActive}
	if err := s.db.Store.Create(ctx, st); err != nil {
		if repo.IsConstraintError(err) {
			return nil, ErrSlugAlreadyExists
		}
		return nil, err
	}
	slog.InfoContext(ctx, "store created", "store_id", st.ID, "slug", slug)
	return &StoreView{Store: st, BookingURL: s.BookingURL(st)}, nil
}

func (s *storeService) BookingQR(ctx context.Context, storeID uuid.UUID) ([]byte, error) {
	st, err := s.get(ctx, storeID)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(s.BookingURL(st), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode booking qr: %w", err)
	}
	return png, nil
}

// ---------------------------------------------------------------------------
// Admins
// ---------------------------------------------------------------------------

func (s *storeService) ListAdmins(ctx context.Context) ([]*repo.Admin, error) {
	return s.db.Admin.List(ctx)
}

func (s *storeService) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*repo.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !reEmail.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	if _, err := s.get(ctx, req.StoreID); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	a := &repo.Admin{Email: email, HashedPassword: hash, StoreID: req.StoreID, Role: authorize.AdminRoleOwner}
	if err := s.db.Admin.Create(ctx, a); err != nil {
		if repo.IsConstraintError(err) {
			return nil, ErrAdminExists
		}
		return nil, err
	}

	if err := authorize.AssignStoreOwner(ctx, s.auth, a.ID, a.StoreID); err != nil {
		// Without the role the admin could log in but not act; undo the row.
		if derr := s.db.Admin.Delete(ctx, email); derr != nil {
			slog.ErrorContext(ctx, "rollback of admin without role failed", "email", email, "error", derr)
		}
		return nil, fmt.Errorf("assign store owner: %w", err)
	}
	slog.InfoContext(ctx, "store admin created", "admin_id", a.ID, "store_id", a.StoreID)
	return a, nil
}

func (s *storeService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrPasswordTooShort
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	err = s.db.Admin.UpdatePassword(ctx, strings.ToLower(strings.TrimSpace(email)), hash)
	if repo.IsNotFound(err) {
		return ErrAdminNotFound
	}
	return err
}

func (s *storeService) ChangeStore(ctx context.Context, email string, storeID uuid.UUID) error {
	a, err := s.admin(ctx, email)
	if err != nil {
		return err
	}
	if _, err := s.get(ctx, storeID); err != nil {
		return err
	}
	if a.StoreID == storeID {
		// Re-grant so a retry after a half-applied move still ends with the role.
		if err := authorize.AssignStoreOwner(ctx, s.auth, a.ID, storeID); err != nil {
			return fmt.Errorf("assign store owner: %w", err)
		}
		return nil
	}
	if err := authorize.MoveStoreOwner(ctx, s.auth, a.ID, a.StoreID, storeID); err != nil {
		return fmt.Errorf("move store owner: %w", err)
	}
	if err := s.db.Admin.UpdateStore(ctx, a.Email, storeID); err != nil {
		if rerr := authorize.MoveStoreOwner(ctx, s.auth, a.ID, storeID, a.StoreID); rerr != nil {
			slog.ErrorContext(ctx, "restoring store owner role failed", "admin_id", a.ID, "store_id", a.StoreID, "error", rerr)
		}
		return err
	}
	slog.InfoContext(ctx, "store admin moved", "admin_id", a.ID, "from", a.StoreID, "to", storeID)
	return nil
}

func (s *storeService) DeleteAdmin(ctx context.Context, email string) error {
	a, err := s.admin(ctx, email)
	if err != nil {
		return err
	}
	// Roles go first: a failed row delete leaves an admin who can be deleted again.
	if _, err := s.auth.RemoveSubject(ctx, authorize.SubjectOf(a.ID)); err != nil {
		return fmt.Errorf("remove admin roles: %w", err)
	}
	if err := s.db.Admin.Delete(ctx, a.Email); err != nil {
		return err
	}
	slog.InfoContext(ctx, "store admin deleted", "admin_id", a.ID)
	return nil
}

func (s *storeService) admin(ctx context.Context, email string) (*repo.Admin, error) {
	a, err := s.db.Admin.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if repo.IsNotFound(err) {
		return nil, ErrAdminNotFound
	}
	return a, err
}

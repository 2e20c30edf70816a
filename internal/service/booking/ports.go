package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/repo"
)

// Store is the tenant-scoped persistence the booking path needs. Every
// method takes the store id; implementations must filter on it.
type Store interface {
	HoursStore
	GetStore(ctx context.Context, storeID uuid.UUID) (*repo.Store, error)
	ServiceTypes(ctx context.Context, storeID uuid.UUID) ([]*repo.ServiceType, error)
	Therapists(ctx context.Context, storeID uuid.UUID) ([]*repo.Therapist, error)
	InsertBooking(ctx context.Context, storeID uuid.UUID, b *repo.Booking) error
}

// Confirmation is what the customer is told about a committed booking.
type Confirmation struct {
	BookingID    uuid.UUID
	StoreID      uuid.UUID
	StoreName    string
	CustomerName string
	Email        string
	Phone        string
	ServiceType  string
	AddOns       string
	Therapist    string
	Start        time.Time
	End          time.Time
	Note         string
}

type Notifier interface {
	Send(ctx context.Context, c Confirmation) error
}

// NewRepoStore adapts the repository client to Store.
func NewRepoStore(c *repo.Client) Store {
	return repoStore{c: c}
}

type repoStore struct {
	c *repo.Client
}

func (s repoStore) LatestStoreHours(ctx context.Context, storeID uuid.UUID) (*repo.StoreHours, error) {
	return s.c.StoreHours.Latest(ctx, storeID)
}

func (s repoStore) GetStore(ctx context.Context, storeID uuid.UUID) (*repo.Store, error) {
	return s.c.Store.Get(ctx, storeID)
}

func (s repoStore) ServiceTypes(ctx context.Context, storeID uuid.UUID) ([]*repo.ServiceType, error) {
	return s.c.ServiceType.List(ctx, storeID)
}

func (s repoStore) Therapists(ctx context.Context, storeID uuid.UUID) ([]*repo.Therapist, error) {
	return s.c.Therapist.List(ctx, storeID)
}

func (s repoStore) InsertBooking(ctx context.Context, storeID uuid.UUID, b *repo.Booking) error {
	return s.c.Booking.Create(ctx, storeID, b)
}

package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/repo"
)

func melbourne(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Melbourne")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return loc
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time           { return c.now }
func (c fixedClock) Location() *time.Location { return c.now.Location() }

// memStore is an in-memory Store keyed by store id.
type memStore struct {
	mu         sync.Mutex
	stores     map[uuid.UUID]*repo.Store
	hours      map[uuid.UUID]*repo.StoreHours
	services   map[uuid.UUID][]*repo.ServiceType
	therapists map[uuid.UUID][]*repo.Therapist
	bookings   map[uuid.UUID][]*repo.Booking

	hoursErr  error
	insertErr error
	inserts   int
}

func newMemStore() *memStore {
	return &memStore{
		stores:     map[uuid.UUID]*repo.Store{},
		hours:      map[uuid.UUID]*repo.StoreHours{},
		services:   map[uuid.UUID][]*repo.ServiceType{},
		therapists: map[uuid.UUID][]*repo.Therapist{},
		bookings:   map[uuid.UUID][]*repo.Booking{},
	}
}

// seed creates a store open 10:00-18:00 with one service, two add-ons
// and one therapist.
func (m *memStore) seed() uuid.UUID {
	id := uuid.New()
	m.stores[id] = &repo.Store{ID: id, Name: "Mel Spa", Slug: "mel-spa", Status: "active"}
	m.hours[id] = &repo.StoreHours{StoreID: id, Open: "10:00 AM", Close: "06:00 PM"}
	m.services[id] = []*repo.ServiceType{
		{StoreID: id, Name: "Thai", Rate: 80},
		{StoreID: id, Name: "Hot Stone", Rate: 5, IsAddOn: true},
		{StoreID: id, Name: "Aroma Oil", Rate: 7.5, IsAddOn: true},
	}
	m.therapists[id] = []*repo.Therapist{{StoreID: id, Name: "Ann", Rate: 30}}
	return id
}

func (m *memStore) LatestStoreHours(_ context.Context, storeID uuid.UUID) (*repo.StoreHours, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hoursErr != nil {
		return nil, m.hoursErr
	}
	h, ok := m.hours[storeID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return h, nil
}

func (m *memStore) GetStore(_ context.Context, storeID uuid.UUID) (*repo.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[storeID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s, nil
}

func (m *memStore) ServiceTypes(_ context.Context, storeID uuid.UUID) ([]*repo.ServiceType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.services[storeID], nil
}

func (m *memStore) Therapists(_ context.Context, storeID uuid.UUID) ([]*repo.Therapist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.therapists[storeID], nil
}

func (m *memStore) InsertBooking(_ context.Context, storeID uuid.UUID, b *repo.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	if m.insertErr != nil {
		return m.insertErr
	}
	b.ID = uuid.New()
	b.StoreID = storeID
	m.bookings[storeID] = append(m.bookings[storeID], b)
	return nil
}

func (m *memStore) bookingsOf(storeID uuid.UUID) []*repo.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*repo.Booking(nil), m.bookings[storeID]...)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Confirmation
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, c Confirmation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, c)
	return n.err
}

var errBoom = errors.New("boom")

// Package catalog manages what a store offers: service types, therapists,
// therapist working hours and store hours.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/internal/service/booking"
)

// DefaultShift is shown for therapists without saved working hours.
var DefaultShift = struct{ Start, End string }{"10:00 AM", "06:00 PM"}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Menu struct {
	Therapists []string            `json:"therapists"`
	Services   []*repo.ServiceType `json:"services"`
	AddOns     []*repo.ServiceType `json:"add_ons"`
	Durations  []int               `json:"durations"`
}

type StoreHoursView struct {
	Open      string `json:"open"`
	Close     string `json:"close"`
	Defaulted bool   `json:"defaulted"`
}

type WorkingHours struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Saved     bool   `json:"saved"`
}

type AddServiceTypeRequest struct {
	Name    string
	Rate    float64
	IsAddOn bool
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Menu(ctx context.Context, storeID uuid.UUID) (*Menu, error)

	ListTherapists(ctx context.Context, storeID uuid.UUID) ([]*repo.Therapist, error)
	AddTherapist(ctx context.Context, storeID uuid.UUID, name string, rate float64) (*repo.Therapist, error)
	DeleteTherapist(ctx context.Context, storeID uuid.UUID, name string) error

	ListWorkingHours(ctx context.Context, storeID uuid.UUID) ([]WorkingHours, error)
	SetWorkingHours(ctx context.Context, storeID uuid.UUID, name, start, end string) (*WorkingHours, error)

	ListServiceTypes(ctx context.Context, storeID uuid.UUID) ([]*repo.ServiceType, error)
	AddServiceType(ctx context.Context, storeID uuid.UUID, req AddServiceTypeRequest) (*repo.ServiceType, error)
	DeleteServiceType(ctx context.Context, storeID, id uuid.UUID) error

	GetStoreHours(ctx context.Context, storeID uuid.UUID) (*StoreHoursView, error)
	SetStoreHours(ctx context.Context, storeID uuid.UUID, openStr, closeStr string) (*StoreHoursView, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type catalogService struct {
	db    *repo.Client
	hours *booking.HoursResolver
}

func New(db *repo.Client, hours *booking.HoursResolver) Service {
	return &catalogService{db: db, hours: hours}
}

func (s *catalogService) Menu(ctx context.Context, storeID uuid.UUID) (*Menu, error) {
	therapists, err := s.db.Therapist.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	types, err := s.db.ServiceType.List(ctx, storeID)
	if err != nil {
		return nil, err
	}

	m := &Menu{
		Therapists: make([]string, 0, len(therapists)),
		Services:   []*repo.ServiceType{},
		AddOns:     []*repo.ServiceType{},
		Durations:  booking.AllowedDurations,
	}
	for _, t := range therapists {
		m.Therapists = append(m.Therapists, t.Name)
	}
	for _, st := range types {
		if st.IsAddOn {
			m.AddOns = append(m.AddOns, st)
		} else {
			m.Services = append(m.Services, st)
		}
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Therapists
// ---------------------------------------------------------------------------

func (s *catalogService) ListTherapists(ctx context.Context, storeID uuid.UUID) ([]*repo.Therapist, error) {
	return s.db.Therapist.List(ctx, storeID)
}

func (s *catalogService) AddTherapist(ctx context.Context, storeID uuid.UUID, name string, rate float64) (*repo.Therapist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if rate < 0 {
		return nil, ErrNegativeRate
	}

	existing, err := s.db.Therapist.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	for _, t := range existing {
		if t.Name == name {
			return nil, ErrTherapistExists
		}
	}

	t := &repo.Therapist{StoreID: storeID, Name: name, Rate: rate}
	if err := s.db.Therapist.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *catalogService) DeleteTherapist(ctx context.Context, storeID uuid.UUID, name string) error {
	err := s.db.Therapist.DeleteByName(ctx, storeID, name)
	if repo.IsNotFound(err) {
		return ErrTherapistNotFound
	}
	return err
}

// ListWorkingHours lists every therapist with saved hours or the default shift.
func (s *catalogService) ListWorkingHours(ctx context.Context, storeID uuid.UUID) ([]WorkingHours, error) {
	therapists, err := s.db.Therapist.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	saved, err := s.db.TherapistTime.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*repo.TherapistTime, len(saved))
	for _, tt := range saved {
		byName[tt.Name] = tt
	}

	out := make([]WorkingHours, 0, len(therapists))
	for _, t := range therapists {
		wh := WorkingHours{Name: t.Name, StartTime: DefaultShift.Start, EndTime: DefaultShift.End}
		if tt, ok := byName[t.Name]; ok {
			wh.StartTime, wh.EndTime, wh.Saved = tt.StartTime, tt.EndTime, true
		}
		out = append(out, wh)
	}
	return out, nil
}

func (s *catalogService) SetWorkingHours(ctx context.Context, storeID uuid.UUID, name, start, end string) (*WorkingHours, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	h, err := booking.ParseHours(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHours, err)
	}

	therapists, err := s.db.Therapist.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, t := range therapists {
		found = found || t.Name == name
	}
	if !found {
		return nil, ErrTherapistNotFound
	}

	wh := &WorkingHours{Name: name, StartTime: h.Open.String(), EndTime: h.Close.String(), Saved: true}
	if err := s.db.TherapistTime.Upsert(ctx, storeID, wh.Name, wh.StartTime, wh.EndTime); err != nil {
		return nil, err
	}
	return wh, nil
}

// ---------------------------------------------------------------------------
// Service types
// ---------------------------------------------------------------------------

func (s *catalogService) ListServiceTypes(ctx context.Context, storeID uuid.UUID) ([]*repo.ServiceType, error) {
	return s.db.ServiceType.List(ctx, storeID)
}

func (s *catalogService) AddServiceType(ctx context.Context, storeID uuid.UUID, req AddServiceTypeRequest) (*repo.ServiceType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.Rate < 0 {
		return nil, ErrNegativeRate
	}

	st := &repo.ServiceType{StoreID: storeID, Name: name, Rate: req.Rate, IsAddOn: req.IsAddOn}
	if err := s.db.ServiceType.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *catalogService) DeleteServiceType(ctx context.Context, storeID, id uuid.UUID) error {
	err := s.db.ServiceType.Delete(ctx, storeID, id)
	if repo.IsNotFound(err) {
		return ErrServiceNotFound
	}
	return err
}

// ---------------------------------------------------------------------------
// Store hours
// ---------------------------------------------------------------------------

func (s *catalogService) GetStoreHours(ctx context.Context, storeID uuid.UUID) (*StoreHoursView, error) {
	h := s.hours.ResolveOrDefault(ctx, storeID)
	return &StoreHoursView{Open: h.Open.String(), Close: h.Close.String(), Defaulted: h.Defaulted}, nil
}

func (s *catalogService) SetStoreHours(ctx context.Context, storeID uuid.UUID, openStr, closeStr string) (*StoreHoursView, error) {
	h, err := booking.ParseHours(openStr, closeStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHours, err)
	}
	if _, err := s.db.StoreHours.Save(ctx, storeID, h.Open.String(), h.Close.String()); err != nil {
		return nil, err
	}
	return &StoreHoursView{Open: h.Open.String(), Close: h.Close.String()}, nil
}

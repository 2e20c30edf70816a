// Package appointment is the admin console's view of a store's bookings:
// listing, manual entry by staff and deletion.
package appointment

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/internal/service/booking"
)

// AddOnMinutes are the add-on lengths staff can pick when entering a
// booking by hand.
var AddOnMinutes = []int{0, 15, 30, 45, 60}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// ManualRequest is a booking taken over the phone or at the counter. Unlike
// public bookings it carries explicit start and end times and is not
// checked against the slot grid.
type ManualRequest struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Therapist    string `json:"therapist"`
	ServiceType  string `json:"service_type"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	AddOnMinutes int    `json:"add_on_minutes"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, storeID uuid.UUID) ([]*repo.Booking, error)
	ListAll(ctx context.Context) ([]*repo.Booking, error)
	AddManual(ctx context.Context, storeID uuid.UUID, req ManualRequest) (*repo.Booking, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type appointmentService struct {
	db    *repo.Client
	clock booking.Clock
}

func New(db *repo.Client, clock booking.Clock) Service {
	return &appointmentService{db: db, clock: clock}
}

func (s *appointmentService) List(ctx context.Context, storeID uuid.UUID) ([]*repo.Booking, error) {
	return s.db.Booking.List(ctx, storeID)
}

func (s *appointmentService) ListAll(ctx context.Context) ([]*repo.Booking, error) {
	return s.db.Booking.ListAll(ctx)
}

func (s *appointmentService) AddManual(ctx context.Context, storeID uuid.UUID, req ManualRequest) (*repo.Booking, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Therapist = strings.TrimSpace(req.Therapist)
	if req.CustomerName == "" {
		return nil, ErrCustomerRequired
	}
	if req.Therapist == "" {
		return nil, ErrTherapistRequired
	}
	if !slices.Contains(AddOnMinutes, req.AddOnMinutes) {
		return nil, ErrInvalidAddOnMinutes
	}

	day, err := booking.ParseDate(req.Date, s.clock.Location())
	if err != nil {
		return nil, err
	}
	start, err := booking.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start %v", ErrInvalidTimeRange, err)
	}
	end, err := booking.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end %v", ErrInvalidTimeRange, err)
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}

	types, err := s.db.ServiceType.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	var service *repo.ServiceType
	for _, st := range types {
		if !st.IsAddOn && st.Name == req.ServiceType {
			service = st
			break
		}
	}
	if service == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownServiceType, req.ServiceType)
	}

	bk := &repo.Booking{
		Date:         day.Format(booking.DateLayout),
		StartTime:    start.String(),
		EndTime:      end.String(),
		CustomerName: req.CustomerName,
		Phone:        strings.TrimSpace(req.Phone),
		Therapist:    req.Therapist,
		ServiceType:  service.Name,
		AddOn:        addOnLabel(req.AddOnMinutes),
		AddOnPrice:   booking.ManualAddOnPrice(service.Rate, req.AddOnMinutes),
	}
	if err := s.db.Booking.Create(ctx, storeID, bk); err != nil {
		return nil, err
	}
	return bk, nil
}

func (s *appointmentService) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	if err := s.db.Booking.Delete(ctx, storeID, id); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func addOnLabel(minutes int) string {
	if minutes == 0 {
		return ""
	}
	return fmt.Sprintf("%d min", minutes)
}

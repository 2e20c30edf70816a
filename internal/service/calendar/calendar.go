// Package calendar renders a store's bookings as resource-timeline events
// for the admin console and applies drag-and-drop reschedules.
package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/internal/service/archive"
	"github.com/melbooking/melbooking_backend/internal/service/booking"
)

// Palette colours therapists in list order, wrapping after the last one.
var Palette = []string{
	"#f44336", "#3f51b5", "#009688", "#ff9800", "#9c27b0", "#03a9f4",
	"#4caf50", "#e91e63", "#607d8b", "#cddc39", "#795548", "#00bcd4",
}

const resourcePrefix = "t_"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Resource struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

type Event struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	ResourceID string    `json:"resourceId"`
	Color      string    `json:"color"`
	Phone      string    `json:"phone,omitempty"`
	AddOn      string    `json:"add_on,omitempty"`
}

type View struct {
	Resources    []Resource `json:"resources"`
	Events       []Event    `json:"events"`
	BookingCount int        `json:"booking_count"`
	NewBookings  bool       `json:"new_bookings"`
}

// Move is a drag-and-drop result: ISO-8601 start and end plus the target
// resource.
type Move struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	ResourceID string `json:"resource_id"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// View archives the store's past bookings, then renders what is left.
	View(ctx context.Context, storeID, viewerID uuid.UUID) (*View, error)
	Reschedule(ctx context.Context, storeID, bookingID uuid.UUID, m Move) (*repo.Booking, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type calendarService struct {
	db        *repo.Client
	archiver  archive.Service
	watermark Watermark
	clock     booking.Clock
}

func New(db *repo.Client, archiver archive.Service, watermark Watermark, clock booking.Clock) Service {
	return &calendarService{db: db, archiver: archiver, watermark: watermark, clock: clock}
}

func ResourceID(i int) string { return resourcePrefix + strconv.Itoa(i) }

func (s *calendarService) View(ctx context.Context, storeID, viewerID uuid.UUID) (*View, error) {
	if s.archiver != nil {
		if _, err := s.archiver.SweepStore(ctx, storeID); err != nil {
			slog.WarnContext(ctx, "archive before calendar view failed", "store_id", storeID, "error", err)
		}
	}

	therapists, err := s.db.Therapist.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.db.Booking.List(ctx, storeID)
	if err != nil {
		return nil, err
	}

	v := &View{
		Resources:    make([]Resource, 0, len(therapists)),
		Events:       make([]Event, 0, len(bookings)),
		BookingCount: len(bookings),
	}
	index := make(map[string]int, len(therapists))
	for i, t := range therapists {
		index[t.Name] = i
		v.Resources = append(v.Resources, Resource{ID: ResourceID(i), Title: t.Name, Color: colour(i)})
	}

	loc := s.clock.Location()
	for _, bk := range bookings {
		i, ok := index[bk.Therapist]
		if !ok {
			continue
		}
		start, end, err := bookingSpan(bk, loc)
		if err != nil {
			slog.WarnContext(ctx, "skipping unreadable booking", "store_id", storeID, "booking_id", bk.ID, "error", err)
			continue
		}
		v.Events = append(v.Events, Event{
			ID:         bk.ID,
			Title:      fmt.Sprintf("%s - %s", bk.CustomerName, bk.ServiceType),
			Start:      start.Format(time.RFC3339),
			End:        end.Format(time.RFC3339),
			ResourceID: ResourceID(i),
			Color:      colour(i),
			Phone:      bk.Phone,
			AddOn:      bk.AddOn,
		})
	}

	if s.watermark != nil {
		prev, seen, err := s.watermark.Swap(ctx, storeID, viewerID, v.BookingCount)
		if err != nil {
			slog.WarnContext(ctx, "calendar watermark unavailable", "store_id", storeID, "error", err)
		} else {
			v.NewBookings = seen && v.BookingCount > prev
		}
	}
	return v, nil
}

func (s *calendarService) Reschedule(ctx context.Context, storeID, bookingID uuid.UUID, m Move) (*repo.Booking, error) {
	loc := s.clock.Location()
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(m.Start))
	if err != nil {
		return nil, fmt.Errorf("%w: start %v", ErrInvalidTimeRange, err)
	}
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(m.End))
	if err != nil {
		return nil, fmt.Errorf("%w: end %v", ErrInvalidTimeRange, err)
	}
	start, end = start.In(loc), end.In(loc)
	if !end.After(start) || start.Format(booking.DateLayout) != end.Format(booking.DateLayout) {
		return nil, ErrInvalidTimeRange
	}

	therapist, err := s.resolveResource(ctx, storeID, m.ResourceID)
	if err != nil {
		return nil, err
	}

	date := start.Format(booking.DateLayout)
	from, to := start.Format(booking.ClockLayout), end.Format(booking.ClockLayout)
	if err := s.db.Booking.Reschedule(ctx, storeID, bookingID, date, from, to, therapist); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	slog.InfoContext(ctx, "booking rescheduled",
		"store_id", storeID, "booking_id", bookingID, "date", date, "start", from, "therapist", therapist)

	return &repo.Booking{
		ID:        bookingID,
		StoreID:   storeID,
		Date:      date,
		StartTime: from,
		EndTime:   to,
		Therapist: therapist,
	}, nil
}

func (s *calendarService) resolveResource(ctx context.Context, storeID uuid.UUID, id string) (string, error) {
	i, err := strconv.Atoi(strings.TrimPrefix(id, resourcePrefix))
	if err != nil || !strings.HasPrefix(id, resourcePrefix) {
		return "", fmt.Errorf("%w: %q", ErrUnknownResource, id)
	}
	therapists, err := s.db.Therapist.List(ctx, storeID)
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(therapists) {
		return "", fmt.Errorf("%w: %q", ErrUnknownResource, id)
	}
	return therapists[i].Name, nil
}

func colour(i int) string { return Palette[i%len(Palette)] }

func bookingSpan(bk *repo.Booking, loc *time.Location) (time.Time, time.Time, error) {
	day, err := booking.ParseDate(bk.Date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, err := booking.ParseTimeOfDay(bk.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := booking.ParseTimeOfDay(bk.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start.On(day), end.On(day), nil
}

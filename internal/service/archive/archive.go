// Package archive moves bookings whose day has passed out of the live
// bookings table.
package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/internal/service/booking"
	"github.com/melbooking/melbooking_backend/pkg/observability"
)

type Service interface {
	// SweepStore archives bookings of one store dated before today and
	// reports how many moved.
	SweepStore(ctx context.Context, storeID uuid.UUID) (int, error)
	// SweepAll runs SweepStore for every store. A failing store does not
	// stop the others.
	SweepAll(ctx context.Context) (int, error)
	// List returns archived bookings, latest booking date first.
	List(ctx context.Context, storeID uuid.UUID) ([]*repo.ArchivedBooking, error)
}

type archiveService struct {
	db      *repo.Client
	clock   booking.Clock
	metrics *observability.BookingMetrics
}

func New(db *repo.Client, clock booking.Clock, metrics *observability.BookingMetrics) Service {
	return &archiveService{db: db, clock: clock, metrics: metrics}
}

func (s *archiveService) SweepStore(ctx context.Context, storeID uuid.UUID) (int, error) {
	bookings, err := s.db.Booking.List(ctx, storeID)
	if err != nil {
		return 0, err
	}

	today := booking.Today(s.clock)
	var past []*repo.Booking
	for _, bk := range bookings {
		day, err := booking.ParseDate(bk.Date, s.clock.Location())
		if err != nil {
			slog.WarnContext(ctx, "skipping booking with unreadable date",
				"store_id", storeID, "booking_id", bk.ID, "date", bk.Date)
			continue
		}
		if day.Before(today) {
			past = append(past, bk)
		}
	}
	if len(past) == 0 {
		return 0, nil
	}

	n, err := s.db.ArchiveBookings(ctx, storeID, past, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("archive store %s: %w", storeID, err)
	}
	s.metrics.Archived(ctx, n)
	slog.InfoContext(ctx, "archived past bookings", "store_id", storeID, "count", n)
	return n, nil
}

func (s *archiveService) SweepAll(ctx context.Context) (int, error) {
	stores, err := s.db.Store.List(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	var errs []error
	for _, st := range stores {
		n, err := s.SweepStore(ctx, st.ID)
		if err != nil {
			slog.ErrorContext(ctx, "archive sweep failed", "store_id", st.ID, "error", err)
			errs = append(errs, err)
			continue
		}
		total += n
	}
	return total, errors.Join(errs...)
}

func (s *archiveService) List(ctx context.Context, storeID uuid.UUID) ([]*repo.ArchivedBooking, error) {
	rows, err := s.db.ArchivedBooking.List(ctx, storeID)
	if err != nil {
		return nil, err
	}

	loc := s.clock.Location()
	dayOf := func(ab *repo.ArchivedBooking) time.Time {
		d, _ := booking.ParseDate(ab.Date, loc)
		return d
	}
	slices.SortStableFunc(rows, func(a, b *repo.ArchivedBooking) int {
		return dayOf(b).Compare(dayOf(a))
	})
	return rows, nil
}

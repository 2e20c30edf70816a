package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/pkg/observability"
)

// AllowedDurations are the bookable lengths in minutes.
var AllowedDurations = []int{30, 45, 60, 90, 120}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Request is a customer's booking form. Catalog entries are named, as the
// booking record stores names.
type Request struct {
	CustomerName    string
	Email           string
	Phone           string
	ServiceType     string
	AddOns          []string
	Therapist       string
	Date            string // DD/MM/YYYY
	DurationMinutes int
	SlotLabel       string
	Note            string
}

type Result struct {
	Booking   *repo.Booking
	Start     time.Time
	End       time.Time
	BasePrice float64
}

// Availability is the selectable set for one day.
type Availability struct {
	Date  time.Time
	Hours Hours
	Slots Slots
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Availability(ctx context.Context, storeID uuid.UUID, date string, durationMinutes int) (*Availability, error)
	Commit(ctx context.Context, storeID uuid.UUID, req Request) (*Result, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type committer struct {
	store    Store
	hours    *HoursResolver
	notifier Notifier
	clock    Clock
	metrics  *observability.BookingMetrics
}

// New builds the booking service. notifier and metrics may be nil.
func New(store Store, hours *HoursResolver, notifier Notifier, clock Clock, metrics *observability.BookingMetrics) Service {
	return &committer{store: store, hours: hours, notifier: notifier, clock: clock, metrics: metrics}
}

func (c *committer) Availability(ctx context.Context, storeID uuid.UUID, date string, durationMinutes int) (*Availability, error) {
	duration, err := parseDuration(durationMinutes)
	if err != nil {
		return nil, err
	}
	day, err := ParseDate(date, c.clock.Location())
	if err != nil {
		return nil, err
	}

	a := &Availability{Date: day, Hours: c.hours.ResolveOrDefault(ctx, storeID)}
	if day.Before(Today(c.clock)) {
		return a, nil
	}
	a.Slots = GenerateSlots(day, a.Hours.Open, a.Hours.Close, duration)
	return a, nil
}

func (c *committer) Commit(ctx context.Context, storeID uuid.UUID, req Request) (*Result, error) {
	ctx, span := observability.StartSpan(ctx, "booking.commit",
		attribute.String("store_id", storeID.String()),
		attribute.Int("duration_minutes", req.DurationMinutes),
	)
	defer span.End()

	res, err := c.commit(ctx, storeID, req)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotificationFailed):
		c.metrics.NotificationFailed(ctx, storeID.String())
		span.RecordError(err)
	default:
		reason := rejectReason(err)
		c.metrics.Rejected(ctx, storeID.String(), reason)
		span.SetStatus(codes.Error, reason)
	}
	return res, err
}

func (c *committer) commit(ctx context.Context, storeID uuid.UUID, req Request) (*Result, error) {
	label := strings.TrimSpace(req.SlotLabel)
	if label == "" || label == NoSlotsLabel {
		return nil, ErrNoSlotSelected
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, ErrMissingEmail
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, ErrMissingPhone
	}

	duration, err := parseDuration(req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	day, err := ParseDate(req.Date, c.clock.Location())
	if err != nil {
		return nil, err
	}

	hours := c.hours.ResolveOrDefault(ctx, storeID)
	slot, ok := GenerateSlots(day, hours.Open, hours.Close, duration).Lookup(label)
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrSlotUnavailable, label, req.Date)
	}
	if day.Before(Today(c.clock)) {
		return nil, ErrDateInPast
	}

	cat, err := c.loadCatalog(ctx, storeID, req)
	if err != nil {
		return nil, err
	}

	start := slot.Start
	end := start.Add(duration)
	b := &repo.Booking{
		Date:         start.Format(DateLayout),
		StartTime:    start.Format(ClockLayout),
		EndTime:      end.Format(ClockLayout),
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        phone,
		Therapist:    cat.therapist.Name,
		ServiceType:  cat.service.Name,
		AddOn:        joinNames(cat.addOns),
		AddOnPrice:   AddOnTotal(cat.addOns),
	}
	if err := c.store.InsertBooking(ctx, storeID, b); err != nil {
		return nil, fmt.Errorf("%w: insert booking: %w", ErrBackendUnavailable, err)
	}
	c.metrics.Committed(ctx, storeID.String())
	slog.InfoContext(ctx, "booking committed",
		"store_id", storeID,
		"booking_id", b.ID,
		"date", b.Date,
		"start", b.StartTime,
		"therapist", b.Therapist,
	)

	res := &Result{Booking: b, Start: start, End: end, BasePrice: BasePrice(cat.service, duration)}

	if c.notifier == nil {
		return res, nil
	}
	err = c.notifier.Send(ctx, Confirmation{
		BookingID:    b.ID,
		StoreID:      storeID,
		StoreName:    cat.store.Name,
		CustomerName: b.CustomerName,
		Email:        strings.TrimSpace(req.Email),
		Phone:        phone,
		ServiceType:  b.ServiceType,
		AddOns:       b.AddOn,
		Therapist:    b.Therapist,
		Start:        start,
		End:          end,
		Note:         strings.TrimSpace(req.Note),
	})
	if err != nil {
		slog.WarnContext(ctx, "booking confirmation failed", "store_id", storeID, "booking_id", b.ID, "error", err)
		return res, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}
	return res, nil
}

type catalog struct {
	store     *repo.Store
	service   *repo.ServiceType
	addOns    []*repo.ServiceType
	therapist *repo.Therapist
}

func (c *committer) loadCatalog(ctx context.Context, storeID uuid.UUID, req Request) (*catalog, error) {
	store, err := c.store.GetStore(ctx, storeID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: store %s", ErrConfigurationMissing, storeID)
		}
		return nil, fmt.Errorf("%w: get store: %w", ErrBackendUnavailable, err)
	}
	types, err := c.store.ServiceTypes(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("%w: list service types: %w", ErrBackendUnavailable, err)
	}
	therapists, err := c.store.Therapists(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("%w: list therapists: %w", ErrBackendUnavailable, err)
	}

	cat := &catalog{store: store}
	for _, st := range types {
		if !st.IsAddOn && st.Name == req.ServiceType {
			cat.service = st
			break
		}
	}
	if cat.service == nil {
		return nil, fmt.Errorf("%w: service type %q", ErrConfigurationMissing, req.ServiceType)
	}

	for _, name := range req.AddOns {
		idx := slices.IndexFunc(types, func(st *repo.ServiceType) bool { return st.IsAddOn && st.Name == name })
		if idx < 0 {
			return nil, fmt.Errorf("%w: add-on %q", ErrConfigurationMissing, name)
		}
		cat.addOns = append(cat.addOns, types[idx])
	}

	idx := slices.IndexFunc(therapists, func(t *repo.Therapist) bool { return t.Name == req.Therapist })
	if idx < 0 {
		return nil, fmt.Errorf("%w: therapist %q", ErrConfigurationMissing, req.Therapist)
	}
	cat.therapist = therapists[idx]
	return cat, nil
}

func parseDuration(minutes int) (time.Duration, error) {
	if !slices.Contains(AllowedDurations, minutes) {
		return 0, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, minutes)
	}
	return time.Duration(minutes) * time.Minute, nil
}

func joinNames(types []*repo.ServiceType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

func rejectReason(err error) string {
	for _, r := range []struct {
		err    error
		reason string
	}{
		{ErrNoSlotSelected, "no_slot"},
		{ErrMissingEmail, "missing_email"},
		{ErrMissingPhone, "missing_phone"},
		{ErrInvalidDuration, "invalid_duration"},
		{ErrInvalidDate, "invalid_date"},
		{ErrSlotUnavailable, "slot_unavailable"},
		{ErrDateInPast, "date_in_past"},
		{ErrConfigurationMissing, "configuration_missing"},
		{ErrBackendUnavailable, "backend_unavailable"},
	} {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "other"
}

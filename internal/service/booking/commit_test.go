package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fixture struct {
	store    *memStore
	notifier *recordingNotifier
	svc      Service
	storeID  uuid.UUID
}

// newFixture is set on 30/05/2025 09:00 in Melbourne.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc := melbourne(t)
	store := newMemStore()
	storeID := store.seed()
	notifier := &recordingNotifier{}
	clock := fixedClock{now: time.Date(2025, time.May, 30, 9, 0, 0, 0, loc)}

	return &fixture{
		store:    store,
		notifier: notifier,
		svc:      New(store, NewHoursResolver(store, Hours{}, nil), notifier, clock, nil),
		storeID:  storeID,
	}
}

func validRequest() Request {
	return Request{
		CustomerName:    "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "0412 345 678",
		ServiceType:     "Thai",
		AddOns:          []string{"Hot Stone", "Aroma Oil"},
		Therapist:       "Ann",
		Date:            "01/06/2025",
		DurationMinutes: 60,
		SlotLabel:       "05:00 PM",
		Note:            "left shoulder",
	}
}

func TestCommitEndToEnd(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Commit(context.Background(), f.storeID, validRequest())
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	b := res.Booking
	checks := []struct{ field, got, want string }{
		{"date", b.Date, "01/06/2025"},
		{"start", b.StartTime, "05:00 PM"},
		{"end", b.EndTime, "06:00 PM"},
		{"customer", b.CustomerName, "Jane Doe"},
		{"phone", b.Phone, "0412 345 678"},
		{"therapist", b.Therapist, "Ann"},
		{"service", b.ServiceType, "Thai"},
		{"add-ons", b.AddOn, "Hot Stone, Aroma Oil"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.field, c.got, c.want)
		}
	}
	if b.AddOnPrice != 12.5 {
		t.Errorf("add-on price = %v, want 12.5", b.AddOnPrice)
	}
	if b.StoreID != f.storeID {
		t.Errorf("store id = %v, want %v", b.StoreID, f.storeID)
	}
	if res.BasePrice != 80 {
		t.Errorf("base price = %v, want 80", res.BasePrice)
	}
	if got := res.End.Sub(res.Start); got != time.Hour {
		t.Errorf("end - start = %v", got)
	}

	if n := len(f.store.bookingsOf(f.storeID)); n != 1 {
		t.Fatalf("persisted %d bookings, want 1", n)
	}
	if len(f.notifier.sent) != 1 {
		t.Fatalf("sent %d confirmations, want 1", len(f.notifier.sent))
	}
	sent := f.notifier.sent[0]
	if sent.Email != "jane@example.com" || sent.StoreName != "Mel Spa" || sent.Note != "left shoulder" || !sent.Start.Equal(res.Start) {
		t.Errorf("confirmation = %+v", sent)
	}
}

func TestCommitValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"no slot", func(r *Request) { r.SlotLabel = "" }, ErrNoSlotSelected},
		{"sentinel slot", func(r *Request) { r.SlotLabel = NoSlotsLabel }, ErrNoSlotSelected},
		{"no slot beats missing email", func(r *Request) { r.SlotLabel = ""; r.Email = "" }, ErrNoSlotSelected},
		{"blank email", func(r *Request) { r.Email = "   " }, ErrMissingEmail},
		{"email beats phone", func(r *Request) { r.Email = ""; r.Phone = "" }, ErrMissingEmail},
		{"missing phone", func(r *Request) { r.Phone = "" }, ErrMissingPhone},
		{"blank phone", func(r *Request) { r.Phone = " \t" }, ErrMissingPhone},
		{"bad duration", func(r *Request) { r.DurationMinutes = 50 }, ErrInvalidDuration},
		{"bad date", func(r *Request) { r.Date = "2025-06-01" }, ErrInvalidDate},
		{"slot past closing", func(r *Request) { r.SlotLabel = "05:15 PM" }, ErrSlotUnavailable},
		{"off-grid slot", func(r *Request) { r.SlotLabel = "10:07 AM" }, ErrSlotUnavailable},
		{"past date", func(r *Request) { r.Date = "29/05/2025" }, ErrDateInPast},
		{"unknown therapist", func(r *Request) { r.Therapist = "Bob" }, ErrConfigurationMissing},
		{"unknown service", func(r *Request) { r.ServiceType = "Swedish" }, ErrConfigurationMissing},
		{"add-on as service", func(r *Request) { r.ServiceType = "Hot Stone" }, ErrConfigurationMissing},
		{"unknown add-on", func(r *Request) { r.AddOns = []string{"Cupping"} }, ErrConfigurationMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(&req)

			res, err := f.svc.Commit(context.Background(), f.storeID, req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Commit() error = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Errorf("Commit() result = %+v, want nil", res)
			}
			if f.store.inserts != 0 {
				t.Errorf("inserts = %d, want 0", f.store.inserts)
			}
			if len(f.notifier.sent) != 0 {
				t.Errorf("notifications = %d, want 0", len(f.notifier.sent))
			}
		})
	}
}

func TestCommitValidationErrorsShareParent(t *testing.T) {
	for _, err := range []error{ErrNoSlotSelected, ErrMissingEmail, ErrMissingPhone, ErrInvalidDuration, ErrDateInPast, ErrSlotUnavailable} {
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%v is not a validation error", err)
		}
	}
	if errors.Is(ErrConfigurationMissing, ErrValidation) {
		t.Error("configuration missing must not be a validation error")
	}
}

func TestCommitToday(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Date = "30/05/2025"
	req.SlotLabel = "10:00 AM"

	if _, err := f.svc.Commit(context.Background(), f.storeID, req); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
}

func TestCommitDefaultsHours(t *testing.T) {
	f := newFixture(t)
	delete(f.store.hours, f.storeID)

	req := validRequest()
	req.SlotLabel = "07:00 PM"
	res, err := f.svc.Commit(context.Background(), f.storeID, req)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if res.Booking.EndTime != "08:00 PM" {
		t.Errorf("end = %q", res.Booking.EndTime)
	}
}

func TestCommitNotificationFailureKeepsBooking(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errBoom

	res, err := f.svc.Commit(context.Background(), f.storeID, validRequest())
	if !errors.Is(err, ErrNotificationFailed) || !errors.Is(err, errBoom) {
		t.Fatalf("Commit() error = %v, want notification failure", err)
	}
	if res == nil || res.Booking == nil {
		t.Fatal("result must be returned with the notification error")
	}
	if n := len(f.store.bookingsOf(f.storeID)); n != 1 {
		t.Errorf("persisted %d bookings, want 1", n)
	}
}

func TestCommitInsertFailure(t *testing.T) {
	f := newFixture(t)
	f.store.insertErr = errBoom

	_, err := f.svc.Commit(context.Background(), f.storeID, validRequest())
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("Commit() error = %v, want ErrBackendUnavailable", err)
	}
	if len(f.notifier.sent) != 0 {
		t.Error("no confirmation for an unsaved booking")
	}
}

func TestCommitTenantIsolation(t *testing.T) {
	f := newFixture(t)
	other := uuid.New()
	f.store.stores[other] = f.store.stores[f.storeID]

	_, err := f.svc.Commit(context.Background(), other, validRequest())
	if !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("Commit() error = %v, want ErrConfigurationMissing", err)
	}
	if len(f.store.bookingsOf(f.storeID)) != 0 || len(f.store.bookingsOf(other)) != 0 {
		t.Error("no booking may be written")
	}
}

// Two customers picking the same slot both get a booking: nothing checks
// existing bookings.
func TestConcurrentCommitsOnSameSlotBothPersist(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Commit(context.Background(), f.storeID, validRequest())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("commit %d error = %v", i, err)
		}
	}
	bookings := f.store.bookingsOf(f.storeID)
	if len(bookings) != 2 {
		t.Fatalf("persisted %d bookings, want 2", len(bookings))
	}
	a, b := bookings[0], bookings[1]
	if a.Date != b.Date || a.StartTime != b.StartTime || a.Therapist != b.Therapist {
		t.Errorf("bookings differ: %+v vs %+v", a, b)
	}
	if a.ID == b.ID {
		t.Error("bookings share an id")
	}
}

func TestAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Availability(ctx, f.storeID, "01/06/2025", 60)
	if err != nil {
		t.Fatalf("Availability() error = %v", err)
	}
	labels := a.Slots.Labels()
	if len(labels) != 29 || labels[0] != "10:00 AM" || labels[28] != "05:00 PM" {
		t.Errorf("labels = %v", labels)
	}
	if a.Hours.Defaulted {
		t.Error("hours should be configured")
	}

	past, err := f.svc.Availability(ctx, f.storeID, "29/05/2025", 60)
	if err != nil {
		t.Fatalf("Availability(past) error = %v", err)
	}
	if len(past.Slots) != 0 {
		t.Errorf("past day slots = %v", past.Slots.Labels())
	}

	if _, err := f.svc.Availability(ctx, f.storeID, "01/06/2025", 10); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("Availability(10m) error = %v", err)
	}
}

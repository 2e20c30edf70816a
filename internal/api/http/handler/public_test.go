package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/api/http/handler"
	"github.com/melbooking/melbooking_backend/internal/api/http/middleware"
	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/internal/service/booking"
	"github.com/melbooking/melbooking_backend/internal/service/catalog"
	"github.com/melbooking/melbooking_backend/internal/service/store"
)

var melbourne = func() *time.Location {
	loc, err := time.LoadLocation("Australia/Melbourne")
	if err != nil {
		panic(err)
	}
	return loc
}()

type fakeStores struct {
	store.Service
	stores map[string]*repo.Store
}

func (f *fakeStores) Resolve(_ context.Context, ref string) (*repo.Store, error) {
	if st, ok := f.stores[ref]; ok {
		return st, nil
	}
	return nil, store.ErrStoreNotFound
}

type fakeCatalog struct {
	catalog.Service
}

func (fakeCatalog) Menu(context.Context, uuid.UUID) (*catalog.Menu, error) {
	return &catalog.Menu{Therapists: []string{"Anna"}, Durations: booking.AllowedDurations}, nil
}

type fakeBooking struct {
	commitErr error
	got       booking.Request
}

func (f *fakeBooking) Availability(_ context.Context, _ uuid.UUID, date string, minutes int) (*booking.Availability, error) {
	day, err := booking.ParseDate(date, melbourne)
	if err != nil {
		return nil, err
	}
	h := booking.Hours{Open: booking.TimeOfDay{Hour: 10}, Close: booking.TimeOfDay{Hour: 12}}
	return &booking.Availability{
		Date:  day,
		Hours: h,
		Slots: booking.GenerateSlots(day, h.Open, h.Close, time.Duration(minutes)*time.Minute),
	}, nil
}

func (f *fakeBooking) Commit(_ context.Context, storeID uuid.UUID, req booking.Request) (*booking.Result, error) {
	f.got = req
	if f.commitErr != nil && !errors.Is(f.commitErr, booking.ErrNotificationFailed) {
		return nil, f.commitErr
	}
	b := &repo.Booking{ID: uuid.New(), StoreID: storeID, Date: req.Date, StartTime: req.SlotLabel, EndTime: "11:00 AM"}
	return &booking.Result{Booking: b, BasePrice: 90}, f.commitErr
}

func newPublicApp(bk *fakeBooking) (*fiber.App, *repo.Store) {
	st := &repo.Store{ID: uuid.New(), Name: "Southbank", Slug: "southbank"}
	stores := &fakeStores{stores: map[string]*repo.Store{st.Slug: st, st.ID.String(): st}}

	h := handler.NewPublicHandler(fakeCatalog{}, bk)
	app := fiber.New()
	g := app.Group("/stores/:store", middleware.PublicStore(stores))
	g.Get("/", h.Store)
	g.Get("/catalog", h.Catalog)
	g.Get("/slots", h.Slots)
	g.Post("/bookings", h.Book)
	return app, st
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestPublicStoreResolution(t *testing.T) {
	app, st := newPublicApp(&fakeBooking{})

	for _, ref := range []string{st.Slug, st.ID.String()} {
		code, body := do(t, app, http.MethodGet, "/stores/"+ref, "")
		if code != http.StatusOK {
			t.Fatalf("GET store %q = %d", ref, code)
		}
		data := body["data"].(map[string]any)
		if data["store_name"] != "Southbank" {
			t.Errorf("store_name = %v", data["store_name"])
		}
	}

	code, _ := do(t, app, http.MethodGet, "/stores/nowhere", "")
	if code != http.StatusNotFound {
		t.Errorf("unknown store = %d, want 404", code)
	}
}

func TestPublicSlots(t *testing.T) {
	app, st := newPublicApp(&fakeBooking{})

	code, body := do(t, app, http.MethodGet, "/stores/"+st.Slug+"/slots?date=01/06/2025&duration=60", "")
	if code != http.StatusOK {
		t.Fatalf("slots = %d %v", code, body)
	}
	data := body["data"].(map[string]any)
	slots := data["slots"].([]any)
	if len(slots) != 5 || slots[0] != "10:00 AM" || slots[4] != "11:00 AM" {
		t.Errorf("slots = %v", slots)
	}
	if data["open"] != "10:00 AM" || data["close"] != "12:00 PM" {
		t.Errorf("hours = %v-%v", data["open"], data["close"])
	}

	code, _ = do(t, app, http.MethodGet, "/stores/"+st.Slug+"/slots?date=01/06/2025&duration=abc", "")
	if code != http.StatusBadRequest {
		t.Errorf("bad duration = %d, want 400", code)
	}
	code, _ = do(t, app, http.MethodGet, "/stores/"+st.Slug+"/slots?date=2025-06-01", "")
	if code != http.StatusBadRequest {
		t.Errorf("bad date = %d, want 400", code)
	}
}

func TestPublicBookErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		want    int
		warning bool
	}{
		{"committed", nil, http.StatusCreated, false},
		{"notification failed", fmt.Errorf("%w: smtp down", booking.ErrNotificationFailed), http.StatusCreated, true},
		{"missing phone", booking.ErrMissingPhone, http.StatusBadRequest, false},
		{"slot unavailable", fmt.Errorf("%w: 09:00 AM", booking.ErrSlotUnavailable), http.StatusBadRequest, false},
		{"catalog gap", fmt.Errorf("%w: therapist", booking.ErrConfigurationMissing), http.StatusUnprocessableEntity, false},
		{"db down", fmt.Errorf("%w: insert", booking.ErrBackendUnavailable), http.StatusServiceUnavailable, false},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, false},
	}

	body := `{"customer_name":"Jo","email":"jo@example.com","phone":"0412345678","service_type":"Relaxation",
		"add_ons":["Hot Stones"],"therapist":"Anna","date":"01/06/2025","duration":60,"slot":"10:00 AM"}`

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bk := &fakeBooking{commitErr: tc.err}
			app, st := newPublicApp(bk)

			code, resp := do(t, app, http.MethodPost, "/stores/"+st.Slug+"/bookings", body)
			if code != tc.want {
				t.Fatalf("status = %d, want %d (%v)", code, tc.want, resp)
			}
			if bk.got.SlotLabel != "10:00 AM" || bk.got.DurationMinutes != 60 || len(bk.got.AddOns) != 1 {
				t.Errorf("request not bound: %+v", bk.got)
			}
			if code != http.StatusCreated {
				if _, ok := resp["error"]; !ok {
					t.Errorf("missing error envelope: %v", resp)
				}
				return
			}
			data := resp["data"].(map[string]any)
			_, hasWarning := data["warning"]
			if hasWarning != tc.warning {
				t.Errorf("warning present = %v, want %v", hasWarning, tc.warning)
			}
		})
	}
}

func TestPublicBookRejectsMalformedJSON(t *testing.T) {
	app, st := newPublicApp(&fakeBooking{})
	code, _ := do(t, app, http.MethodPost, "/stores/"+st.Slug+"/bookings", "{")
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

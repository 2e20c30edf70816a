package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/repo"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"10:00 AM", TimeOfDay{10, 0}, false},
		{"06:30 PM", TimeOfDay{18, 30}, false},
		{"6:30 PM", TimeOfDay{18, 30}, false},
		{" 12:00 am ", TimeOfDay{0, 0}, false},
		{"12:15 PM", TimeOfDay{12, 15}, false},
		{"18:00", TimeOfDay{}, true},
		{"", TimeOfDay{}, true},
		{"noon", TimeOfDay{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := (TimeOfDay{Hour: 17}).String(); got != "05:00 PM" {
		t.Errorf("String() = %q", got)
	}
	if got := (TimeOfDay{Hour: 9, Minute: 5}).String(); got != "09:05 AM" {
		t.Errorf("String() = %q", got)
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		row     *repo.StoreHours
		err     error
		want    Hours
		wantErr error
	}{
		{"configured", &repo.StoreHours{Open: "09:00 AM", Close: "05:30 PM"}, nil, Hours{Open: TimeOfDay{9, 0}, Close: TimeOfDay{17, 30}}, nil},
		{"short format", &repo.StoreHours{Open: "9:00 AM", Close: "5:30 PM"}, nil, Hours{Open: TimeOfDay{9, 0}, Close: TimeOfDay{17, 30}}, nil},
		{"absent", nil, nil, Hours{}, ErrHoursNotConfigured},
		{"garbage", &repo.StoreHours{Open: "soon", Close: "later"}, nil, Hours{}, ErrHoursMalformed},
		{"open after close", &repo.StoreHours{Open: "08:00 PM", Close: "10:00 AM"}, nil, Hours{}, ErrHoursMalformed},
		{"open equals close", &repo.StoreHours{Open: "10:00 AM", Close: "10:00 AM"}, nil, Hours{}, ErrHoursMalformed},
		{"backend down", nil, errBoom, Hours{}, ErrBackendUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			storeID := uuid.New()
			if tt.row != nil {
				store.hours[storeID] = tt.row
			}
			store.hoursErr = tt.err

			r := NewHoursResolver(store, Hours{}, nil)
			got, err := r.Resolve(ctx, storeID)
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}

			fallback := r.ResolveOrDefault(ctx, storeID)
			if tt.wantErr == nil {
				if fallback != tt.want {
					t.Errorf("ResolveOrDefault() = %+v, want %+v", fallback, tt.want)
				}
				return
			}
			if fallback.Open != (TimeOfDay{Hour: 10}) || fallback.Close != (TimeOfDay{Hour: 20}) || !fallback.Defaulted {
				t.Errorf("ResolveOrDefault() = %+v, want defaulted 10:00-20:00", fallback)
			}
		})
	}
}

func TestResolveIsTenantScoped(t *testing.T) {
	store := newMemStore()
	a := store.seed()
	b := uuid.New()

	r := NewHoursResolver(store, Hours{}, nil)
	if _, err := r.Resolve(context.Background(), b); !errors.Is(err, ErrHoursNotConfigured) {
		t.Errorf("store b must not see store a's hours, got %v", err)
	}
	if h, err := r.Resolve(context.Background(), a); err != nil || h.Close != (TimeOfDay{Hour: 18}) {
		t.Errorf("Resolve(a) = %+v, %v", h, err)
	}
}

func TestCustomDefaults(t *testing.T) {
	r := NewHoursResolver(newMemStore(), Hours{Open: TimeOfDay{Hour: 9}, Close: TimeOfDay{Hour: 17}}, nil)
	h := r.ResolveOrDefault(context.Background(), uuid.New())
	if h.Open.Hour != 9 || h.Close.Hour != 17 || !h.Defaulted {
		t.Errorf("ResolveOrDefault() = %+v", h)
	}
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/pkg/observability"
)

// Hours is a store's daily window. Defaulted marks the fallback window.
type Hours struct {
	Open      TimeOfDay
	Close     TimeOfDay
	Defaulted bool
}

// DefaultHours applies to stores without usable hours.
var DefaultHours = Hours{Open: TimeOfDay{Hour: 10}, Close: TimeOfDay{Hour: 20}}

// HoursStore is the slice of Store the resolver needs.
type HoursStore interface {
	LatestStoreHours(ctx context.Context, storeID uuid.UUID) (*repo.StoreHours, error)
}

type HoursResolver struct {
	store    HoursStore
	defaults Hours
	metrics  *observability.BookingMetrics
}

// NewHoursResolver falls back to defaults; a zero defaults means DefaultHours.
func NewHoursResolver(store HoursStore, defaults Hours, metrics *observability.BookingMetrics) *HoursResolver {
	if defaults.Open == (TimeOfDay{}) && defaults.Close == (TimeOfDay{}) {
		defaults = DefaultHours
	}
	defaults.Defaulted = true
	return &HoursResolver{store: store, defaults: defaults, metrics: metrics}
}

// Resolve returns the store's configured hours or one of
// ErrHoursNotConfigured, ErrHoursMalformed or ErrBackendUnavailable.
func (r *HoursResolver) Resolve(ctx context.Context, storeID uuid.UUID) (Hours, error) {
	row, err := r.store.LatestStoreHours(ctx, storeID)
	if err != nil {
		if repo.IsNotFound(err) {
			return Hours{}, ErrHoursNotConfigured
		}
		return Hours{}, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return ParseHours(row.Open, row.Close)
}

// ResolveOrDefault never fails: anything but configured hours yields the
// default window.
func (r *HoursResolver) ResolveOrDefault(ctx context.Context, storeID uuid.UUID) Hours {
	h, err := r.Resolve(ctx, storeID)
	if err == nil {
		return h
	}

	level := slog.LevelWarn
	if errors.Is(err, ErrHoursNotConfigured) {
		level = slog.LevelInfo
	}
	slog.Log(ctx, level, "using default store hours",
		"store_id", storeID,
		"open", r.defaults.Open.String(),
		"close", r.defaults.Close.String(),
		"reason", err,
	)
	r.metrics.HoursDefaulted(ctx, storeID.String())
	return r.defaults
}

// ParseHours validates a stored open/close pair.
func ParseHours(openStr, closeStr string) (Hours, error) {
	o, err := ParseTimeOfDay(openStr)
	if err != nil {
		return Hours{}, fmt.Errorf("%w: open: %w", ErrHoursMalformed, err)
	}
	c, err := ParseTimeOfDay(closeStr)
	if err != nil {
		return Hours{}, fmt.Errorf("%w: close: %w", ErrHoursMalformed, err)
	}
	if !o.Before(c) {
		return Hours{}, fmt.Errorf("%w: open %s is not before close %s", ErrHoursMalformed, o, c)
	}
	return Hours{Open: o, Close: c}, nil
}

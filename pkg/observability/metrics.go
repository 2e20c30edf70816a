package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/melbooking/melbooking_backend/booking"

// BookingMetrics counts booking outcomes per store.
type BookingMetrics struct {
	committed     metric.Int64Counter
	rejected      metric.Int64Counter
	notifyFailed  metric.Int64Counter
	hoursDefaults metric.Int64Counter
	archived      metric.Int64Counter
}

// NewBookingMetrics registers the booking instruments on mp. A nil mp
// uses the global provider.
func NewBookingMetrics(mp metric.MeterProvider) (*BookingMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	m := &BookingMetrics{}
	var err error
	if m.committed, err = meter.Int64Counter("booking_committed_total",
		metric.WithDescription("Bookings persisted")); err != nil {
		return nil, err
	}
	if m.rejected, err = meter.Int64Counter("booking_rejected_total",
		metric.WithDescription("Booking attempts rejected before persistence")); err != nil {
		return nil, err
	}
	if m.notifyFailed, err = meter.Int64Counter("booking_notification_failed_total",
		metric.WithDescription("Persisted bookings whose confirmation could not be sent")); err != nil {
		return nil, err
	}
	if m.hoursDefaults, err = meter.Int64Counter("store_hours_defaulted_total",
		metric.WithDescription("Store hour lookups that fell back to default hours")); err != nil {
		return nil, err
	}
	if m.archived, err = meter.Int64Counter("booking_archived_total",
		metric.WithDescription("Past bookings moved to the archive")); err != nil {
		return nil, err
	}
	return m, nil
}

func storeAttr(storeID string) metric.AddOption {
	return metric.WithAttributes(attribute.String("store_id", storeID))
}

// The methods below are nil-safe so callers may run without metrics.

func (m *BookingMetrics) Committed(ctx context.Context, storeID string) {
	if m != nil {
		m.committed.Add(ctx, 1, storeAttr(storeID))
	}
}

func (m *BookingMetrics) Rejected(ctx context.Context, storeID, reason string) {
	if m != nil {
		m.rejected.Add(ctx, 1, metric.WithAttributes(
			attribute.String("store_id", storeID),
			attribute.String("reason", reason),
		))
	}
}

func (m *BookingMetrics) NotificationFailed(ctx context.Context, storeID string) {
	if m != nil {
		m.notifyFailed.Add(ctx, 1, storeAttr(storeID))
	}
}

func (m *BookingMetrics) HoursDefaulted(ctx context.Context, storeID string) {
	if m != nil {
		m.hoursDefaults.Add(ctx, 1, storeAttr(storeID))
	}
}

func (m *BookingMetrics) Archived(ctx context.Context, n int) {
	if m != nil && n > 0 {
		m.archived.Add(ctx, int64(n))
	}
}

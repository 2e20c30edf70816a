package observability

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out[m.Name] += dp.Value
			}
		}
	}
	return out
}

func TestBookingMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := NewBookingMetrics(mp)
	if err != nil {
		t.Fatalf("NewBookingMetrics() error = %v", err)
	}

	ctx := context.Background()
	m.Committed(ctx, "s1")
	m.Committed(ctx, "s2")
	m.Rejected(ctx, "s1", "slot_unavailable")
	m.NotificationFailed(ctx, "s1")
	m.HoursDefaulted(ctx, "s1")
	m.Archived(ctx, 3)
	m.Archived(ctx, 0)

	got := collectSums(t, reader)
	want := map[string]int64{
		"booking_committed_total":           2,
		"booking_rejected_total":            1,
		"booking_notification_failed_total": 1,
		"store_hours_defaulted_total":       1,
		"booking_archived_total":            3,
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s = %d, want %d", name, got[name], v)
		}
	}
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	ctx := context.Background()
	m.Committed(ctx, "s")
	m.Rejected(ctx, "s", "r")
	m.NotificationFailed(ctx, "s")
	m.HoursDefaulted(ctx, "s")
	m.Archived(ctx, 1)
}

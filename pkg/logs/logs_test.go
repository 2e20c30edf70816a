package logs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/pkg/reqctx"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMultiHandlerFanOut(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(h).With("store_id", "abc")

	logger.Info("booking committed")
	logger.Error("notification failed")

	if !strings.Contains(infoBuf.String(), "booking committed") || !strings.Contains(infoBuf.String(), "notification failed") {
		t.Errorf("info handler missing records: %q", infoBuf.String())
	}
	if strings.Contains(errBuf.String(), "booking committed") {
		t.Errorf("error handler received info record: %q", errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "store_id=abc") {
		t.Errorf("error handler lost attrs: %q", errBuf.String())
	}
}

func TestMultiHandlerEnabled(t *testing.T) {
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("Enabled(info) = true, want false")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("Enabled(error) = false, want true")
	}
}

func TestContextHandlerAddsRequestScope(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(contextHandler{slog.NewTextHandler(&buf, nil)})

	storeID := uuid.New()
	ctx := reqctx.WithRequestMeta(context.Background(), &reqctx.RequestMeta{RequestID: "req-42"})
	ctx = reqctx.WithStoreID(ctx, storeID)

	logger.InfoContext(ctx, "booking committed")
	logger.Info("no context")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "request_id=req-42") || !strings.Contains(lines[0], "store_id="+storeID.String()) {
		t.Errorf("scoped line = %q", lines[0])
	}
	if strings.Contains(lines[1], "request_id") {
		t.Errorf("unscoped line = %q", lines[1])
	}
}

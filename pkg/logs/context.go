package logs

import (
	"context"
	"log/slog"

	"github.com/melbooking/melbooking_backend/pkg/reqctx"
)

// contextHandler copies request scoped values from ctx onto the record.
// Only *Context logging calls see them.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := reqctx.RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if storeID, ok := reqctx.StoreScope(ctx); ok {
		r.AddAttrs(slog.String("store_id", storeID.String()))
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

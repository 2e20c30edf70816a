// Package worker runs background jobs on asynq: a scheduler enqueues the
// nightly archive sweep and the server executes it.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/melbooking/melbooking_backend/internal/service/archive"
)

const TypeArchiveSweep = "archive:sweep"

// ArchiveSweepPayload limits a sweep to one store; a nil StoreID sweeps
// every store.
type ArchiveSweepPayload struct {
	StoreID *uuid.UUID `json:"store_id,omitempty"`
}

func NewArchiveSweepTask(storeID *uuid.UUID, opts ...asynq.Option) (*asynq.Task, error) {
	b, err := json.Marshal(ArchiveSweepPayload{StoreID: storeID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeArchiveSweep, b, opts...), nil
}

// HandleArchiveSweep returns the handler for TypeArchiveSweep tasks.
func HandleArchiveSweep(archiver archive.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ArchiveSweepPayload
		if len(task.Payload()) > 0 {
			if err := json.Unmarshal(task.Payload(), &p); err != nil {
				// A malformed payload will not parse on retry either.
				return fmt.Errorf("archive sweep payload: %v: %w", err, asynq.SkipRetry)
			}
		}

		if p.StoreID != nil {
			n, err := archiver.SweepStore(ctx, *p.StoreID)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "archive sweep finished", "store_id", *p.StoreID, "archived", n)
			return nil
		}

		n, err := archiver.SweepAll(ctx)
		slog.InfoContext(ctx, "archive sweep finished", "archived", n, "failed", err != nil)
		return err
	}
}

// NewMux routes every task type this package knows.
func NewMux(archiver archive.Service) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeArchiveSweep, HandleArchiveSweep(archiver))
	return mux
}

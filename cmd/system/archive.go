package system

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/melbooking/melbooking_backend/config"
	"github.com/melbooking/melbooking_backend/internal/service/archive"
	"github.com/melbooking/melbooking_backend/internal/service/booking"
	"github.com/melbooking/melbooking_backend/internal/worker"
	redispkg "github.com/melbooking/melbooking_backend/pkg/redis"
)

func NewArchiveCommand() *cobra.Command {
	var (
		storeRef string
		enqueue  bool
	)

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Move bookings dated before today into the archive",
		Long: `Runs the same sweep as the nightly worker task. With --enqueue the sweep
is handed to the worker queue instead of running in this process.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}

			var storeID *uuid.UUID
			if storeRef != "" {
				id, err := uuid.Parse(storeRef)
				if err != nil {
					return fmt.Errorf("--store must be a store id: %w", err)
				}
				storeID = &id
			}

			if enqueue {
				return enqueueSweep(cmd.Context(), cfg, storeID)
			}
			return sweepNow(cmd.Context(), cfg, storeID)
		},
	}

	cmd.Flags().StringVar(&storeRef, "store", "", "Only sweep this store id (default: every store)")
	cmd.Flags().BoolVar(&enqueue, "enqueue", false, "Enqueue the sweep for the worker instead of running it here")

	return cmd
}

func sweepNow(ctx context.Context, cfg *config.Config, storeID *uuid.UUID) error {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return err
	}
	client, err := openRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	svc := archive.New(client, booking.NewSystemClock(loc), nil)

	var n int
	if storeID != nil {
		n, err = svc.SweepStore(ctx, *storeID)
	} else {
		n, err = svc.SweepAll(ctx)
	}
	fmt.Printf("Archived %d bookings.\n", n)
	return err
}

func enqueueSweep(ctx context.Context, cfg *config.Config, storeID *uuid.UUID) error {
	client := asynq.NewClient(redispkg.FromCentralConfig(cfg.Redis).AsynqOpt())
	defer client.Close()

	task, err := worker.NewArchiveSweepTask(storeID)
	if err != nil {
		return err
	}
	queue := cfg.Worker.Queue
	if queue == "" {
		queue = "default"
	}
	info, err := client.EnqueueContext(ctx, task, asynq.Queue(queue))
	if err != nil {
		return fmt.Errorf("enqueue archive sweep: %w", err)
	}
	fmt.Printf("Enqueued %s as %s on %s.\n", info.Type, info.ID, info.Queue)
	return nil
}

package app

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"

	"github.com/melbooking/melbooking_backend/config"
	"github.com/melbooking/melbooking_backend/internal/service/archive"
	"github.com/melbooking/melbooking_backend/internal/service/booking"
	"github.com/melbooking/melbooking_backend/internal/worker"
)

// WorkerModule runs the asynq task server and the cron scheduler that
// feeds it.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc       fx.Lifecycle
	Cfg      *config.Config
	Opt      asynq.RedisConnOpt
	Clock    booking.Clock
	Archiver archive.Service
}

func RegisterWorkers(p WorkerParams) error {
	srv := worker.NewServer(p.Opt, p.Cfg.Worker)
	scheduler, err := worker.NewScheduler(p.Opt, p.Cfg.Worker, p.Clock.Location())
	if err != nil {
		return err
	}
	mux := worker.NewMux(p.Archiver)

	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := srv.Start(mux); err != nil {
				return err
			}
			if err := scheduler.Start(); err != nil {
				srv.Shutdown()
				return err
			}
			slog.Info("worker started", "queue", p.Cfg.Worker.Queue, "concurrency", p.Cfg.Worker.Concurrency)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Shutdown()
			srv.Shutdown()
			slog.Info("worker stopped")
			return nil
		},
	})
	return nil
}

package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/melbooking/melbooking_backend/config"
)

const defaultQueue = "default"

func queueName(cfg config.WorkerConfig) string {
	if cfg.Queue == "" {
		return defaultQueue
	}
	return cfg.Queue
}

// NewServer builds the task processor.
func NewServer(opt asynq.RedisConnOpt, cfg config.WorkerConfig) *asynq.Server {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{queueName(cfg): 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			slog.ErrorContext(ctx, "task failed", "type", task.Type(), "error", err)
		}),
		ShutdownTimeout: 30 * time.Second,
	})
}

// NewScheduler registers the nightly archive sweep on cfg.ArchiveCron,
// evaluated in loc.
func NewScheduler(opt asynq.RedisConnOpt, cfg config.WorkerConfig, loc *time.Location) (*asynq.Scheduler, error) {
	s := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: loc,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				slog.Error("scheduled enqueue failed", "error", err)
				return
			}
			slog.Debug("scheduled task enqueued", "type", info.Type, "id", info.ID)
		},
	})

	task, err := NewArchiveSweepTask(nil, asynq.MaxRetry(3), asynq.Timeout(10*time.Minute))
	if err != nil {
		return nil, err
	}
	entryID, err := s.Register(cfg.ArchiveCron, task, asynq.Queue(queueName(cfg)))
	if err != nil {
		return nil, fmt.Errorf("register archive sweep %q: %w", cfg.ArchiveCron, err)
	}
	slog.Info("archive sweep scheduled", "cron", cfg.ArchiveCron, "zone", loc.String(), "entry_id", entryID)
	return s, nil
}

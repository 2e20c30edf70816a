package worker

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/melbooking/melbooking_backend/config"
	"github.com/melbooking/melbooking_backend/internal/app"
	"github.com/melbooking/melbooking_backend/pkg/logs"
)

func NewStartCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run archive tasks and the nightly archive schedule",
		Long: `Start an asynq worker that processes archive tasks and a scheduler
that enqueues a sweep of every store on worker.archive_cron, in the
booking time zone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return err
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return err
			}

			defer logs.Install(cfg)()
			app.Run(cfg, shutdownTimeout, app.WorkerModule)
			return nil
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 45*time.Second, "how long running tasks get to finish")

	return cmd
}

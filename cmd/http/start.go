package http

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/melbooking/melbooking_backend/config"
	apihttp "github.com/melbooking/melbooking_backend/internal/api/http"
	"github.com/melbooking/melbooking_backend/pkg/logs"
)

func NewStartCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Serve the booking, admin and superadmin APIs",
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
			apihttp.Start(cfg, shutdownTimeout)
			return nil
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "how long in-flight requests get to finish")

	return cmd
}

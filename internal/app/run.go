package app

import (
	"log/slog"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/melbooking/melbooking_backend/config"
)

// Run starts an fx application over the shared infra and service modules
// plus modules, and blocks until SIGINT or SIGTERM. fx's own lifecycle
// events are logged only at debug level.
func Run(cfg *config.Config, stopTimeout time.Duration, modules ...fx.Option) {
	opts := []fx.Option{
		fx.Supply(cfg),
		InfraModule,
		ServiceModule,
		fx.StopTimeout(stopTimeout),
		fx.WithLogger(func() fxevent.Logger {
			if strings.EqualFold(cfg.Logging.Level, "debug") {
				return &fxevent.SlogLogger{Logger: slog.Default().With("component", "fx")}
			}
			return fxevent.NopLogger
		}),
	}
	fx.New(append(opts, modules...)...).Run()
}

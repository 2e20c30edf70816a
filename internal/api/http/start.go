package http

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"

	"github.com/melbooking/melbooking_backend/config"
	"github.com/melbooking/melbooking_backend/internal/api/http/router"
	"github.com/melbooking/melbooking_backend/internal/app"
)

// Start serves the public, admin and superadmin APIs until signalled.
func Start(cfg *config.Config, timeout time.Duration) {
	app.Run(cfg, timeout,
		router.Module,
		Module,
		// Building *fiber.App registers the listen hook.
		fx.Invoke(func(*fiber.App) {}),
	)
}

package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/melbooking/melbooking_backend/config"
	"github.com/melbooking/melbooking_backend/internal/api/http/handler"
	"github.com/melbooking/melbooking_backend/internal/api/http/middleware"
	"github.com/melbooking/melbooking_backend/internal/service/appointment"
	"github.com/melbooking/melbooking_backend/internal/service/archive"
	"github.com/melbooking/melbooking_backend/internal/service/auth"
	"github.com/melbooking/melbooking_backend/internal/service/booking"
	"github.com/melbooking/melbooking_backend/internal/service/calendar"
	"github.com/melbooking/melbooking_backend/internal/service/catalog"
	"github.com/melbooking/melbooking_backend/internal/service/report"
	"github.com/melbooking/melbooking_backend/internal/service/store"
	"github.com/melbooking/melbooking_backend/pkg/authorize"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg   *config.Config
	Redis *redis.Client
	Auth  authorize.IAuthorization

	AuthSvc        auth.Service
	StoreSvc       store.Service
	CatalogSvc     catalog.Service
	BookingSvc     booking.Service
	AppointmentSvc appointment.Service
	CalendarSvc    calendar.Service
	ArchiveSvc     archive.Service
	ReportSvc      report.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Middlewares
	authRequired := middleware.AuthRequired(r.p.AuthSvc)
	publicStore := middleware.PublicStore(r.p.StoreSvc)
	bookingLimiter := middleware.NewLimiterWithRedis(r.p.Redis, r.p.Cfg.Server.RateLimit)

	// Permission helper
	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, res, act)
	}

	// 3. Initialize Handlers
	authH := handler.NewAuthHandler(r.p.AuthSvc)
	publicH := handler.NewPublicHandler(r.p.CatalogSvc, r.p.BookingSvc)
	bookingH := handler.NewBookingHandler(r.p.CalendarSvc, r.p.AppointmentSvc, r.p.ArchiveSvc)
	catalogH := handler.NewCatalogHandler(r.p.CatalogSvc)
	reportH := handler.NewReportHandler(r.p.ReportSvc, r.p.StoreSvc)
	storeH := handler.NewStoreHandler(r.p.StoreSvc)

	api := app.Group("/api/v1")

	// 4. Delegate to sub-files
	r.registerPublicRoutes(api, publicH, publicStore, bookingLimiter)
	r.registerAdminRoutes(api, authH, bookingH, catalogH, reportH, authRequired, requirePerm)
	r.registerSuperadminRoutes(api, authH, storeH, bookingH, authRequired, requirePerm)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return authorize.IsPolicyHealthy() },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

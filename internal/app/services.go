package app

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/melbooking/melbooking_backend/config"
	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/internal/service/appointment"
	"github.com/melbooking/melbooking_backend/internal/service/archive"
	"github.com/melbooking/melbooking_backend/internal/service/auth"
	"github.com/melbooking/melbooking_backend/internal/service/booking"
	"github.com/melbooking/melbooking_backend/internal/service/calendar"
	"github.com/melbooking/melbooking_backend/internal/service/catalog"
	"github.com/melbooking/melbooking_backend/internal/service/notification"
	"github.com/melbooking/melbooking_backend/internal/service/report"
	"github.com/melbooking/melbooking_backend/internal/service/store"
	"github.com/melbooking/melbooking_backend/pkg/authorize"
	"github.com/melbooking/melbooking_backend/pkg/email"
	"github.com/melbooking/melbooking_backend/pkg/observability"
	pasetotoken "github.com/melbooking/melbooking_backend/pkg/paseto"
	"github.com/melbooking/melbooking_backend/pkg/sms"
	"github.com/melbooking/melbooking_backend/pkg/util/password"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvidePasetoManager,
		ProvideHasher,
		ProvideHoursResolver,
		ProvideNotifier,
		ProvideAuthService,
		ProvideStoreService,
		ProvideCatalogService,
		ProvideBookingService,
		ProvideAppointmentService,
		ProvideArchiveService,
		ProvideCalendarService,
		ProvideReportService,
	),
	fx.Invoke(EnsureSuperadminRole),
)

func ProvidePasetoManager(cfg *config.Config) (*pasetotoken.Manager, error) {
	return pasetotoken.NewPasetoManager(cfg)
}

func ProvideHasher(cfg *config.Config) *password.Hasher {
	return password.NewHasher(password.FromCentralConfig(cfg.Password))
}

// ProvideHoursResolver falls back to the configured default window.
func ProvideHoursResolver(db *repo.Client, cfg *config.Config, metrics *observability.BookingMetrics) (*booking.HoursResolver, error) {
	open, err := booking.ParseTimeOfDay24(cfg.Booking.DefaultOpen)
	if err != nil {
		return nil, err
	}
	closing, err := booking.ParseTimeOfDay24(cfg.Booking.DefaultClose)
	if err != nil {
		return nil, err
	}
	return booking.NewHoursResolver(booking.NewRepoStore(db), booking.Hours{Open: open, Close: closing}, metrics), nil
}

func ProvideNotifier(mail *email.Client, smsCli *sms.Client, cfg *config.Config) booking.Notifier {
	return notification.New(mail, smsCli, cfg.SMS.DefaultRegion)
}

func ProvideAuthService(db *repo.Client, rdb *redis.Client, paseto *pasetotoken.Manager, cfg *config.Config) auth.Service {
	return auth.New(db, auth.NewRedisSessions(rdb), paseto, cfg)
}

func ProvideStoreService(db *repo.Client, authz authorize.IAuthorization, hasher *password.Hasher, cfg *config.Config) store.Service {
	return store.New(db, authz, hasher, cfg.Booking.PublicBookingURL)
}

func ProvideCatalogService(db *repo.Client, hours *booking.HoursResolver) catalog.Service {
	return catalog.New(db, hours)
}

func ProvideBookingService(
	db *repo.Client,
	hours *booking.HoursResolver,
	notifier booking.Notifier,
	clock booking.Clock,
	metrics *observability.BookingMetrics,
) booking.Service {
	return booking.New(booking.NewRepoStore(db), hours, notifier, clock, metrics)
}

func ProvideAppointmentService(db *repo.Client, clock booking.Clock) appointment.Service {
	return appointment.New(db, clock)
}

func ProvideArchiveService(db *repo.Client, clock booking.Clock, metrics *observability.BookingMetrics) archive.Service {
	return archive.New(db, clock, metrics)
}

func ProvideCalendarService(db *repo.Client, archiver archive.Service, rdb *redis.Client, clock booking.Clock) calendar.Service {
	return calendar.New(db, archiver, calendar.NewRedisWatermark(rdb), clock)
}

func ProvideReportService(db *repo.Client, clock booking.Clock) report.Service {
	return report.New(db, clock)
}

// EnsureSuperadminRole grants the configured superadmin its sys role once
// the enforcer is up. A missing account disables the superadmin console.
func EnsureSuperadminRole(lc fx.Lifecycle, cfg *config.Config, authz authorize.IAuthorization) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Superadmin.Email == "" {
				slog.Warn("superadmin account not configured")
				return nil
			}
			id := authorize.SuperadminPrincipalID(auth.NormaliseEmail(cfg.Superadmin.Email))
			return authorize.AssignPlatformSuperAdmin(ctx, authz, id)
		},
	})
}

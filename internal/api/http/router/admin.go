package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/melbooking/melbooking_backend/internal/api/http/handler"
	"github.com/melbooking/melbooking_backend/internal/api/http/middleware"
	"github.com/melbooking/melbooking_backend/pkg/authorize"
	pasetotoken "github.com/melbooking/melbooking_backend/pkg/paseto"
)

func (r *Router) registerAdminRoutes(
	api fiber.Router,
	ah *handler.AuthHandler,
	bh *handler.BookingHandler,
	ch *handler.CatalogHandler,
	rh *handler.ReportHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	admin := api.Group("/admin")
	admin.Post("/auth/login", ah.Login)

	scoped := admin.Group("", authRequired, middleware.RequirePrincipal(pasetotoken.PrincipalAdmin), middleware.AdminStore())
	scoped.Post("/auth/logout", ah.Logout)
	scoped.Get("/me", ah.Me)

	scoped.Get("/calendar", requirePerm(authorize.ResourceCalendar, authorize.ActionRead), bh.Calendar)

	bookings := scoped.Group("/bookings")
	bookings.Get("/", requirePerm(authorize.ResourceBooking, authorize.ActionList), bh.List)
	bookings.Post("/", requirePerm(authorize.ResourceBooking, authorize.ActionCreate), bh.AddManual)
	bookings.Post("/archive", requirePerm(authorize.ResourceBooking, authorize.ActionArchive), bh.Archive)
	bookings.Patch("/:id/schedule", requirePerm(authorize.ResourceBooking, authorize.ActionUpdate), bh.Reschedule)
	bookings.Delete("/:id", requirePerm(authorize.ResourceBooking, authorize.ActionDelete), bh.Delete)

	scoped.Get("/archived-bookings", requirePerm(authorize.ResourceArchivedBooking, authorize.ActionList), bh.Archived)

	reports := scoped.Group("/reports")
	reports.Get("/income", requirePerm(authorize.ResourceReport, authorize.ActionExport), rh.Income)
	reports.Get("/payroll", requirePerm(authorize.ResourceReport, authorize.ActionExport), rh.Payroll)

	therapists := scoped.Group("/therapists")
	therapists.Get("/", requirePerm(authorize.ResourceTherapist, authorize.ActionList), ch.ListTherapists)
	therapists.Post("/", requirePerm(authorize.ResourceTherapist, authorize.ActionCreate), ch.AddTherapist)
	therapists.Get("/hours", requirePerm(authorize.ResourceTherapistHours, authorize.ActionList), ch.ListWorkingHours)
	therapists.Put("/:name/hours", requirePerm(authorize.ResourceTherapistHours, authorize.ActionUpdate), ch.SetWorkingHours)
	therapists.Delete("/:name", requirePerm(authorize.ResourceTherapist, authorize.ActionDelete), ch.DeleteTherapist)

	services := scoped.Group("/service-types")
	services.Get("/", requirePerm(authorize.ResourceServiceType, authorize.ActionList), ch.ListServiceTypes)
	services.Post("/", requirePerm(authorize.ResourceServiceType, authorize.ActionCreate), ch.AddServiceType)
	services.Delete("/:id", requirePerm(authorize.ResourceServiceType, authorize.ActionDelete), ch.DeleteServiceType)

	scoped.Get("/store-hours", requirePerm(authorize.ResourceStoreHours, authorize.ActionRead), ch.GetStoreHours)
	scoped.Put("/store-hours", requirePerm(authorize.ResourceStoreHours, authorize.ActionUpdate), ch.SetStoreHours)
}

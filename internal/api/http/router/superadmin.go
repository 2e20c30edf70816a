package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/melbooking/melbooking_backend/internal/api/http/handler"
	"github.com/melbooking/melbooking_backend/internal/api/http/middleware"
	"github.com/melbooking/melbooking_backend/pkg/authorize"
	pasetotoken "github.com/melbooking/melbooking_backend/pkg/paseto"
)

// Superadmin routes run in the sys domain: no store is put in scope.
func (r *Router) registerSuperadminRoutes(
	api fiber.Router,
	ah *handler.AuthHandler,
	sh *handler.StoreHandler,
	bh *handler.BookingHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	sa := api.Group("/superadmin")
	sa.Post("/auth/login", ah.SuperadminLogin)

	scoped := sa.Group("", authRequired, middleware.RequirePrincipal(pasetotoken.PrincipalSuperadmin))
	scoped.Post("/auth/logout", ah.Logout)
	scoped.Get("/me", ah.Me)

	stores := scoped.Group("/stores")
	stores.Get("/", requirePerm(authorize.ResourceStore, authorize.ActionList), sh.ListStores)
	stores.Post("/", requirePerm(authorize.ResourceStore, authorize.ActionCreate), sh.CreateStore)
	stores.Get("/:id/qr", requirePerm(authorize.ResourceStore, authorize.ActionRead), sh.BookingQR)

	scoped.Get("/bookings", requirePerm(authorize.ResourceBooking, authorize.ActionList), bh.ListAll)

	admins := scoped.Group("/admins")
	admins.Get("/", requirePerm(authorize.ResourceStoreAdmin, authorize.ActionList), sh.ListAdmins)
	admins.Post("/", requirePerm(authorize.ResourceStoreAdmin, authorize.ActionCreate), sh.CreateAdmin)
	admins.Patch("/:email/password", requirePerm(authorize.ResourceStoreAdmin, authorize.ActionUpdate), sh.ResetPassword)
	admins.Patch("/:email/store", requirePerm(authorize.ResourceStoreAdmin, authorize.ActionUpdate), sh.ChangeStore)
	admins.Delete("/:email", requirePerm(authorize.ResourceStoreAdmin, authorize.ActionDelete), sh.DeleteAdmin)
}

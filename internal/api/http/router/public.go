package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/melbooking/melbooking_backend/internal/api/http/handler"
)

func (r *Router) registerPublicRoutes(
	api fiber.Router,
	h *handler.PublicHandler,
	publicStore fiber.Handler,
	limiter fiber.Handler,
) {
	pub := api.Group("/public")

	// Booking links carry ?store_id= or ?store_slug=.
	pub.Get("/store", publicStore, h.Store)

	s := pub.Group("/stores/:store", publicStore)
	s.Get("/", h.Store)
	s.Get("/catalog", h.Catalog)
	s.Get("/slots", h.Slots)
	s.Post("/bookings", limiter, h.Book)
}

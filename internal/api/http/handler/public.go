package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/melbooking/melbooking_backend/internal/api/http/middleware"
	"github.com/melbooking/melbooking_backend/internal/service/booking"
	"github.com/melbooking/melbooking_backend/internal/service/catalog"
)

// PublicHandler serves the customer booking page.
type PublicHandler struct {
	catalog catalog.Service
	booking booking.Service
}

func NewPublicHandler(cat catalog.Service, bk booking.Service) *PublicHandler {
	return &PublicHandler{catalog: cat, booking: bk}
}

func mapBookingError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, booking.ErrValidation):
		return badRequest(c, err.Error())
	case errors.Is(err, booking.ErrConfigurationMissing):
		return unprocessable(c, err.Error())
	case errors.Is(err, booking.ErrBackendUnavailable):
		slog.ErrorContext(c.Context(), "booking backend unavailable", "error", err)
		return serviceUnavailable(c, "booking is temporarily unavailable, please try again")
	default:
		slog.ErrorContext(c.Context(), "booking failed", "error", err)
		return internalError(c)
	}
}

// GET /api/v1/public/stores/:store
func (h *PublicHandler) Store(c fiber.Ctx) error {
	st, found := middleware.StoreFromFiber(c)
	if !found {
		return notFound(c, "store not found")
	}
	return ok(c, fiber.Map{
		"id":         st.ID,
		"store_name": st.Name,
		"store_slug": st.Slug,
	})
}

// GET /api/v1/public/stores/:store/catalog
func (h *PublicHandler) Catalog(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	menu, err := h.catalog.Menu(c.Context(), storeID)
	if err != nil {
		slog.ErrorContext(c.Context(), "load menu", "store_id", storeID, "error", err)
		return serviceUnavailable(c, "catalog is temporarily unavailable")
	}
	return ok(c, menu)
}

// GET /api/v1/public/stores/:store/slots?date=DD/MM/YYYY&duration=60
func (h *PublicHandler) Slots(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)

	duration, err := strconv.Atoi(c.Query("duration", "60"))
	if err != nil {
		return badRequest(c, "duration must be a number of minutes")
	}

	a, err := h.booking.Availability(c.Context(), storeID, c.Query("date"), duration)
	if err != nil {
		return mapBookingError(c, err)
	}

	labels := a.Slots.Labels()
	resp := fiber.Map{
		"date":      a.Date.Format(booking.DateLayout),
		"open":      a.Hours.Open.String(),
		"close":     a.Hours.Close.String(),
		"defaulted": a.Hours.Defaulted,
		"slots":     labels,
	}
	if len(labels) == 0 {
		resp["message"] = booking.NoSlotsLabel
	}
	return ok(c, resp)
}

type bookingBody struct {
	CustomerName string   `json:"customer_name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	ServiceType  string   `json:"service_type"`
	AddOns       []string `json:"add_ons"`
	Therapist    string   `json:"therapist"`
	Date         string   `json:"date"`
	Duration     int      `json:"duration"`
	Slot         string   `json:"slot"`
	Note         string   `json:"note"`
}

// POST /api/v1/public/stores/:store/bookings
func (h *PublicHandler) Book(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)

	var body bookingBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	res, err := h.booking.Commit(c.Context(), storeID, booking.Request{
		CustomerName:    body.CustomerName,
		Email:           body.Email,
		Phone:           body.Phone,
		ServiceType:     body.ServiceType,
		AddOns:          body.AddOns,
		Therapist:       body.Therapist,
		Date:            body.Date,
		DurationMinutes: body.Duration,
		SlotLabel:       body.Slot,
		Note:            body.Note,
	})
	if err != nil && !errors.Is(err, booking.ErrNotificationFailed) {
		return mapBookingError(c, err)
	}

	resp := fiber.Map{
		"booking":    res.Booking,
		"base_price": booking.Round2(res.BasePrice),
		"message":    "Booking confirmed for " + res.Booking.Date + " at " + res.Booking.StartTime,
	}
	if err != nil {
		resp["warning"] = booking.ErrNotificationFailed.Error()
	}
	return created(c, resp)
}

package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/melbooking/melbooking_backend/internal/service/appointment"
	"github.com/melbooking/melbooking_backend/internal/service/archive"
	"github.com/melbooking/melbooking_backend/internal/service/booking"
	"github.com/melbooking/melbooking_backend/internal/service/calendar"
	pasetotoken "github.com/melbooking/melbooking_backend/pkg/paseto"
)

// BookingHandler is the admin console's booking workspace: calendar,
// manual entries and the archive.
type BookingHandler struct {
	calendar     calendar.Service
	appointments appointment.Service
	archive      archive.Service
}

func NewBookingHandler(cal calendar.Service, appts appointment.Service, arch archive.Service) *BookingHandler {
	return &BookingHandler{calendar: cal, appointments: appts, archive: arch}
}

func mapAdminBookingError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, appointment.ErrNotFound), errors.Is(err, calendar.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, appointment.ErrCustomerRequired),
		errors.Is(err, appointment.ErrTherapistRequired),
		errors.Is(err, appointment.ErrInvalidTimeRange),
		errors.Is(err, appointment.ErrInvalidAddOnMinutes),
		errors.Is(err, calendar.ErrInvalidTimeRange),
		errors.Is(err, booking.ErrValidation):
		return badRequest(c, err.Error())
	case errors.Is(err, appointment.ErrUnknownServiceType),
		errors.Is(err, calendar.ErrUnknownResource):
		return unprocessable(c, err.Error())
	default:
		slog.ErrorContext(c.Context(), "admin booking request failed", "error", err)
		return internalError(c)
	}
}

// GET /api/v1/admin/calendar
func (h *BookingHandler) Calendar(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	claims, found := pasetotoken.ClaimsFromFiber(c)
	if !found {
		return unauthorized(c)
	}

	view, err := h.calendar.View(c.Context(), storeID, claims.UserID)
	if err != nil {
		return mapAdminBookingError(c, err)
	}
	return ok(c, view)
}

// PATCH /api/v1/admin/bookings/:id/schedule
func (h *BookingHandler) Reschedule(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid booking id")
	}

	var body calendar.Move
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	b, err := h.calendar.Reschedule(c.Context(), storeID, id, body)
	if err != nil {
		return mapAdminBookingError(c, err)
	}
	return ok(c, b)
}

// GET /api/v1/admin/bookings
func (h *BookingHandler) List(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	list, err := h.appointments.List(c.Context(), storeID)
	if err != nil {
		return mapAdminBookingError(c, err)
	}
	return ok(c, list)
}

// POST /api/v1/admin/bookings
func (h *BookingHandler) AddManual(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)

	var body appointment.ManualRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	b, err := h.appointments.AddManual(c.Context(), storeID, body)
	if err != nil {
		return mapAdminBookingError(c, err)
	}
	return created(c, b)
}

// DELETE /api/v1/admin/bookings/:id
func (h *BookingHandler) Delete(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid booking id")
	}
	if err := h.appointments.Delete(c.Context(), storeID, id); err != nil {
		return mapAdminBookingError(c, err)
	}
	return noContent(c)
}

// POST /api/v1/admin/bookings/archive
func (h *BookingHandler) Archive(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	n, err := h.archive.SweepStore(c.Context(), storeID)
	if err != nil {
		return mapAdminBookingError(c, err)
	}
	return ok(c, fiber.Map{"archived": n})
}

// GET /api/v1/admin/archived-bookings
func (h *BookingHandler) Archived(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	list, err := h.archive.List(c.Context(), storeID)
	if err != nil {
		return mapAdminBookingError(c, err)
	}
	return ok(c, list)
}

// GET /api/v1/superadmin/bookings
func (h *BookingHandler) ListAll(c fiber.Ctx) error {
	list, err := h.appointments.ListAll(c.Context())
	if err != nil {
		return mapAdminBookingError(c, err)
	}
	return ok(c, list)
}

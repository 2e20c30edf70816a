package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/melbooking/melbooking_backend/internal/service/catalog"
)

// CatalogHandler manages therapists, their hours, service types and
// store hours for the admin's store.
type CatalogHandler struct {
	svc catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func mapCatalogError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalog.ErrNameRequired),
		errors.Is(err, catalog.ErrNegativeRate),
		errors.Is(err, catalog.ErrInvalidHours):
		return badRequest(c, err.Error())
	case errors.Is(err, catalog.ErrTherapistExists):
		return conflict(c, err.Error())
	case errors.Is(err, catalog.ErrTherapistNotFound), errors.Is(err, catalog.ErrServiceNotFound):
		return notFound(c, err.Error())
	default:
		slog.ErrorContext(c.Context(), "catalog request failed", "error", err)
		return internalError(c)
	}
}

// ---------------------------------------------------------------------------
// Therapists
// ---------------------------------------------------------------------------

// GET /api/v1/admin/therapists
func (h *CatalogHandler) ListTherapists(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	list, err := h.svc.ListTherapists(c.Context(), storeID)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return ok(c, list)
}

// POST /api/v1/admin/therapists
func (h *CatalogHandler) AddTherapist(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	var body struct {
		Name string  `json:"name"`
		Rate float64 `json:"rate"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	t, err := h.svc.AddTherapist(c.Context(), storeID, body.Name, body.Rate)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return created(c, t)
}

// DELETE /api/v1/admin/therapists/:name
func (h *CatalogHandler) DeleteTherapist(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	if err := h.svc.DeleteTherapist(c.Context(), storeID, c.Params("name")); err != nil {
		return mapCatalogError(c, err)
	}
	return noContent(c)
}

// GET /api/v1/admin/therapists/hours
func (h *CatalogHandler) ListWorkingHours(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	list, err := h.svc.ListWorkingHours(c.Context(), storeID)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return ok(c, list)
}

// PUT /api/v1/admin/therapists/:name/hours
func (h *CatalogHandler) SetWorkingHours(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	var body struct {
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	wh, err := h.svc.SetWorkingHours(c.Context(), storeID, c.Params("name"), body.StartTime, body.EndTime)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return ok(c, wh)
}

// ---------------------------------------------------------------------------
// Service types
// ---------------------------------------------------------------------------

// GET /api/v1/admin/service-types
func (h *CatalogHandler) ListServiceTypes(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	list, err := h.svc.ListServiceTypes(c.Context(), storeID)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return ok(c, list)
}

// POST /api/v1/admin/service-types
func (h *CatalogHandler) AddServiceType(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	var body struct {
		Name    string  `json:"name"`
		Rate    float64 `json:"rate"`
		IsAddOn bool    `json:"is_addon"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	st, err := h.svc.AddServiceType(c.Context(), storeID, catalog.AddServiceTypeRequest{
		Name:    body.Name,
		Rate:    body.Rate,
		IsAddOn: body.IsAddOn,
	})
	if err != nil {
		return mapCatalogError(c, err)
	}
	return created(c, st)
}

// DELETE /api/v1/admin/service-types/:id
func (h *CatalogHandler) DeleteServiceType(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid service type id")
	}
	if err := h.svc.DeleteServiceType(c.Context(), storeID, id); err != nil {
		return mapCatalogError(c, err)
	}
	return noContent(c)
}

// ---------------------------------------------------------------------------
// Store hours
// ---------------------------------------------------------------------------

// GET /api/v1/admin/store-hours
func (h *CatalogHandler) GetStoreHours(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	v, err := h.svc.GetStoreHours(c.Context(), storeID)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return ok(c, v)
}

// PUT /api/v1/admin/store-hours
func (h *CatalogHandler) SetStoreHours(c fiber.Ctx) error {
	storeID, _ := storeIDFromLocals(c)
	var body struct {
		Open  string `json:"open"`
		Close string `json:"close"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	v, err := h.svc.SetStoreHours(c.Context(), storeID, body.Open, body.Close)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return ok(c, v)
}

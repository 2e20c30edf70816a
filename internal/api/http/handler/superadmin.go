package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/service/store"
)

// StoreHandler is the superadmin console: stores and their admins.
type StoreHandler struct {
	svc store.Service
}

func NewStoreHandler(svc store.Service) *StoreHandler {
	return &StoreHandler{svc: svc}
}

func mapStoreError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrStoreNotFound), errors.Is(err, store.ErrAdminNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, store.ErrSlugAlreadyExists), errors.Is(err, store.ErrAdminExists):
		return conflict(c, err.Error())
	case errors.Is(err, store.ErrStoreNameRequired),
		errors.Is(err, store.ErrInvalidEmail),
		errors.Is(err, store.ErrPasswordTooShort):
		return badRequest(c, err.Error())
	default:
		slog.ErrorContext(c.Context(), "store request failed", "error", err)
		return internalError(c)
	}
}

// GET /api/v1/superadmin/stores
func (h *StoreHandler) ListStores(c fiber.Ctx) error {
	list, err := h.svc.ListStores(c.Context())
	if err != nil {
		return mapStoreError(c, err)
	}
	return ok(c, list)
}

// POST /api/v1/superadmin/stores
func (h *StoreHandler) CreateStore(c fiber.Ctx) error {
	var body struct {
		Name string `json:"store_name"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	v, err := h.svc.CreateStore(c.Context(), body.Name)
	if err != nil {
		return mapStoreError(c, err)
	}
	return created(c, v)
}

// GET /api/v1/superadmin/stores/:id/qr
func (h *StoreHandler) BookingQR(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid store id")
	}
	png, err := h.svc.BookingQR(c.Context(), id)
	if err != nil {
		return mapStoreError(c, err)
	}
	return sendFile(c, "image/png", "", png)
}

// GET /api/v1/superadmin/admins
func (h *StoreHandler) ListAdmins(c fiber.Ctx) error {
	list, err := h.svc.ListAdmins(c.Context())
	if err != nil {
		return mapStoreError(c, err)
	}
	return ok(c, list)
}

// POST /api/v1/superadmin/admins
func (h *StoreHandler) CreateAdmin(c fiber.Ctx) error {
	var body store.CreateAdminRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	a, err := h.svc.CreateAdmin(c.Context(), body)
	if err != nil {
		return mapStoreError(c, err)
	}
	return created(c, a)
}

// PATCH /api/v1/superadmin/admins/:email/password
func (h *StoreHandler) ResetPassword(c fiber.Ctx) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.svc.ResetPassword(c.Context(), c.Params("email"), body.Password); err != nil {
		return mapStoreError(c, err)
	}
	return noContent(c)
}

// PATCH /api/v1/superadmin/admins/:email/store
func (h *StoreHandler) ChangeStore(c fiber.Ctx) error {
	var body struct {
		StoreID uuid.UUID `json:"store_id"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.svc.ChangeStore(c.Context(), c.Params("email"), body.StoreID); err != nil {
		return mapStoreError(c, err)
	}
	return noContent(c)
}

// DELETE /api/v1/superadmin/admins/:email
func (h *StoreHandler) DeleteAdmin(c fiber.Ctx) error {
	if err := h.svc.DeleteAdmin(c.Context(), c.Params("email")); err != nil {
		return mapStoreError(c, err)
	}
	return noContent(c)
}

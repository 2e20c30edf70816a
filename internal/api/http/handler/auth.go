package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/melbooking/melbooking_backend/internal/service/auth"
	pasetotoken "github.com/melbooking/melbooking_backend/pkg/paseto"
)

type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func mapAuthError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, auth.ErrSuperadminDisabled):
		return forbidden(c)
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrSessionNotFound):
		return unauthorized(c)
	default:
		slog.ErrorContext(c.Context(), "auth failed", "error", err)
		return internalError(c)
	}
}

// POST /api/v1/admin/auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body auth.LoginRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Email == "" || body.Password == "" {
		return badRequest(c, "email and password are required")
	}

	tokens, err := h.svc.Login(c.Context(), body)
	if err != nil {
		return mapAuthError(c, err)
	}
	return ok(c, tokens)
}

// POST /api/v1/superadmin/auth/login
func (h *AuthHandler) SuperadminLogin(c fiber.Ctx) error {
	var body auth.LoginRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	tokens, err := h.svc.SuperadminLogin(c.Context(), body)
	if err != nil {
		return mapAuthError(c, err)
	}
	return ok(c, tokens)
}

// POST /api/v1/{admin,superadmin}/auth/logout
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	claims, found := pasetotoken.ClaimsFromFiber(c)
	if !found || claims.SessionID == nil {
		return unauthorized(c)
	}
	if err := h.svc.Logout(c.Context(), *claims.SessionID); err != nil {
		return mapAuthError(c, err)
	}
	return noContent(c)
}

// GET /api/v1/{admin,superadmin}/me
func (h *AuthHandler) Me(c fiber.Ctx) error {
	claims, found := pasetotoken.ClaimsFromFiber(c)
	if !found {
		return unauthorized(c)
	}
	return ok(c, fiber.Map{
		"principal":  claims.Principal,
		"user_id":    claims.UserID,
		"email":      claims.Email,
		"store_id":   claims.StoreID,
		"expires_at": claims.ExpiresAt,
	})
}

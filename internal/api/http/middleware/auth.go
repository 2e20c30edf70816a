package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/melbooking/melbooking_backend/internal/service/auth"
	pasetotoken "github.com/melbooking/melbooking_backend/pkg/paseto"
	"github.com/melbooking/melbooking_backend/pkg/reqctx"
)

// AuthRequired validates a Bearer PASETO token and its live session.
// On success, stores *pasetotoken.Claims in c.Locals(pasetotoken.CtxKeyClaims).
func AuthRequired(svc auth.Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		tok, ok := pasetotoken.BearerToken(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		claims, err := svc.Authenticate(c.Context(), tok)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrSessionNotFound) {
				return fiber.ErrUnauthorized
			}
			slog.ErrorContext(c.Context(), "session lookup failed", "error", err)
			return fiber.ErrServiceUnavailable
		}

		c.Locals(pasetotoken.CtxKeyClaims, claims)
		c.SetContext(reqctx.WithClaims(c.Context(), claims))
		return c.Next()
	}
}

// RequirePrincipal rejects tokens issued for another console.
func RequirePrincipal(p pasetotoken.Principal) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := pasetotoken.ClaimsFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		if claims.Principal != p {
			return fiber.ErrForbidden
		}
		return c.Next()
	}
}

package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/melbooking/melbooking_backend/pkg/authorize"
	pasetotoken "github.com/melbooking/melbooking_backend/pkg/paseto"
)

// RequirePermission checks the authenticated principal against casbin in
// the current store domain (set by AdminStore), or in sys when no store
// is in scope.
func RequirePermission(auth authorize.IAuthorization, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := pasetotoken.ClaimsFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		domain := authorize.DomainSys
		if id, ok := StoreIDFromFiber(c); ok {
			domain = authorize.StoreDomain(id)
		}

		if err := auth.MustEnforce(c.Context(), authorize.SubjectOf(claims.UserID), domain, resource, action); err != nil {
			if errors.Is(err, authorize.ErrForbidden) {
				return fiber.ErrForbidden
			}
			return err
		}

		return c.Next()
	}
}

package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/melbooking/melbooking_backend/internal/repo"
	"github.com/melbooking/melbooking_backend/internal/service/store"
	pasetotoken "github.com/melbooking/melbooking_backend/pkg/paseto"
	"github.com/melbooking/melbooking_backend/pkg/reqctx"
)

const (
	LocalsStoreID = "store_id"
	LocalsStore   = "store"
)

// PublicStore resolves the :store path param (UUID or slug), or the
// store_id / store_slug query of a booking link, and records the store for
// downstream handlers.
func PublicStore(svc store.Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		ref := c.Params("store")
		if ref == "" {
			if id := c.Query("store_id"); id != "" {
				if _, err := uuid.Parse(id); err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "store_id must be a UUID")
				}
				ref = id
			} else {
				ref = c.Query("store_slug")
			}
		}
		if ref == "" {
			return fiber.NewError(fiber.StatusBadRequest, "store_id or store_slug is required")
		}

		st, err := svc.Resolve(c.Context(), ref)
		if err != nil {
			if errors.Is(err, store.ErrStoreNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return err
		}
		setStore(c, st.ID)
		c.Locals(LocalsStore, st)
		return c.Next()
	}
}

// AdminStore scopes an admin request to the store carried in its token.
// Admin tokens without a store are rejected.
func AdminStore() fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := pasetotoken.ClaimsFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		if claims.StoreID == nil || *claims.StoreID == uuid.Nil {
			return fiber.NewError(fiber.StatusForbidden, "admin is not assigned to a store")
		}
		setStore(c, *claims.StoreID)
		return c.Next()
	}
}

func setStore(c fiber.Ctx, id uuid.UUID) {
	c.Locals(LocalsStoreID, id)
	c.SetContext(reqctx.WithStoreID(c.Context(), id))
}

// StoreIDFromFiber returns the store set by PublicStore or AdminStore.
func StoreIDFromFiber(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocalsStoreID).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// StoreFromFiber returns the store row resolved by PublicStore.
func StoreFromFiber(c fiber.Ctx) (*repo.Store, bool) {
	st, ok := c.Locals(LocalsStore).(*repo.Store)
	return st, ok && st != nil
}

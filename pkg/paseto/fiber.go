package pasetotoken

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// CtxKeyClaims is the fiber Locals key holding the verified *Claims.
const CtxKeyClaims = "auth.claims"

// BearerToken reads "Authorization: Bearer <token>".
func BearerToken(c fiber.Ctx) (string, bool) {
	scheme, tok, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

func ClaimsFromFiber(c fiber.Ctx) (*Claims, bool) {
	cl, ok := c.Locals(CtxKeyClaims).(*Claims)
	return cl, ok && cl != nil
}

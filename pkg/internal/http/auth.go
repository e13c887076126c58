package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/openbites/cookbook/pkg/internal/services"
)

// authMiddleware resolves the bearer token into an account and stashes it in
// the request locals. Requests without a usable token stay anonymous; the
// handlers decide whether that is acceptable.
func authMiddleware(c *fiber.Ctx) error {
	raw := c.Query("tk")
	if authorization := c.Get(fiber.HeaderAuthorization); len(authorization) > 0 {
		raw = strings.TrimPrefix(authorization, "Bearer ")
	}
	if len(raw) == 0 {
		return c.Next()
	}

	id, err := services.ParseToken(raw)
	if err != nil {
		return c.Next()
	}

	user, err := services.GetAccount(id)
	if err != nil {
		return c.Next()
	}

	c.Locals("user", user)
	return c.Next()
}

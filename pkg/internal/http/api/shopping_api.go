package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openbites/cookbook/pkg/internal/http/exts"
	"github.com/openbites/cookbook/pkg/internal/models"
	"github.com/openbites/cookbook/pkg/internal/services"
)

func downloadShoppingCart(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	entries, err := services.ComputeShoppingList(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if c.QueryBool("raw", false) {
		return c.JSON(entries)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="shopping_list.txt"`)
	return c.Send(services.RenderShoppingList(entries))
}

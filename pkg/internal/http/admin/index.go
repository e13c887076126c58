package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openbites/cookbook/pkg/internal/http/exts"
)

func MapControllers(app *fiber.App, baseURL string) {
	admin := app.Group(baseURL, func(c *fiber.Ctx) error {
		if err := exts.EnsureStaff(c); err != nil {
			return err
		}
		return c.Next()
	})
	{
		admin.Post("/ingredients/import", adminImportIngredients)
		admin.Post("/tags", adminCreateTag)
		admin.Put("/tags/:tagId", adminEditTag)
		admin.Delete("/tags/:tagId", adminDeleteTag)
	}
}

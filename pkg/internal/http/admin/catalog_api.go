package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openbites/cookbook/pkg/internal/http/exts"
	"github.com/openbites/cookbook/pkg/internal/models"
	"github.com/openbites/cookbook/pkg/internal/services"
	"github.com/samber/lo"
)

type ingredientImportEntry struct {
	Name            string `json:"name" validate:"required"`
	MeasurementUnit string `json:"measurement_unit" validate:"required"`
}

func adminImportIngredients(c *fiber.Ctx) error {
	var data struct {
		Ingredients []ingredientImportEntry `json:"ingredients" validate:"required,min=1"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	entries := lo.Map(data.Ingredients, func(entry ingredientImportEntry, index int) models.Ingredient {
		return models.Ingredient{
			Name:            entry.Name,
			MeasurementUnit: entry.MeasurementUnit,
		}
	})

	imported, err := services.ImportIngredients(entries)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"count": len(imported),
		"data":  imported,
	})
}

func adminCreateTag(c *fiber.Ctx) error {
	var data struct {
		Name  string `json:"name" validate:"required,max=200"`
		Color string `json:"color" validate:"max=7"`
		Slug  string `json:"slug" validate:"required,max=200"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	tag, err := services.NewTag(data.Name, data.Color, data.Slug)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(tag)
}

func adminEditTag(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("tagId", 0)

	var data struct {
		Name  string `json:"name" validate:"required,max=200"`
		Color string `json:"color" validate:"max=7"`
		Slug  string `json:"slug" validate:"required,max=200"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	tag, err := services.GetTag(uint(id))
	if err != nil {
		return err
	}

	tag, err = services.EditTag(tag, data.Name, data.Color, data.Slug)
	if err != nil {
		return err
	}

	return c.JSON(tag)
}

func adminDeleteTag(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("tagId", 0)

	tag, err := services.GetTag(uint(id))
	if err != nil {
		return err
	}

	if err := services.DeleteTag(tag); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

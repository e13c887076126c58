package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openbites/cookbook/pkg/internal/services"
)

func listIngredient(c *fiber.Ctx) error {
	take := c.QueryInt("take", 100)
	offset := c.QueryInt("offset", 0)

	var err error
	var ingredients any
	if probe := c.Query("name"); len(probe) > 0 {
		ingredients, err = services.SearchIngredient(take, offset, probe)
	} else {
		ingredients, err = services.ListIngredient(take, offset)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(ingredients)
}

func getIngredient(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("ingredientId", 0)

	ingredient, err := services.GetIngredient(uint(id))
	if err != nil {
		return err
	}

	return c.JSON(ingredient)
}

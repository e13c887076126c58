package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openbites/cookbook/pkg/internal/database"
	"github.com/openbites/cookbook/pkg/internal/http/exts"
	"github.com/openbites/cookbook/pkg/internal/models"
	"github.com/openbites/cookbook/pkg/internal/services"
	"gorm.io/gorm"
)

type recipeWritePayload struct {
	Name        string                    `json:"name" validate:"required,max=200"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cooking_time" validate:"required"`
	Image       string                    `json:"image"`
	Gallery     []string                  `json:"gallery"`
	Ingredients []services.IngredientLine `json:"ingredients" validate:"required"`
	Tags        []uint                    `json:"tags"`
}

func universalRecipeFilter(c *fiber.Ctx, tx *gorm.DB) (*gorm.DB, error) {
	if len(c.Query("author")) > 0 {
		author, err := services.GetAccountByUsername(c.Query("author"))
		if err != nil {
			return tx, err
		}
		tx = services.FilterRecipeWithAuthor(tx, author.ID)
	}

	if len(c.Query("tags")) > 0 {
		tx = services.FilterRecipeWithTag(tx, c.Query("tags"))
	}

	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		if c.QueryBool("is_favorited", false) {
			tx = services.FilterRecipeFavoritedBy(tx, user.ID)
		}
		if c.QueryBool("is_in_shopping_cart", false) {
			tx = services.FilterRecipeInCartOf(tx, user.ID)
		}
	}

	if probe := c.Query("name"); len(probe) > 0 {
		tx = services.FilterRecipeWithFuzzySearch(tx, probe)
	}

	return tx, nil
}

func getRecipe(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("recipeId", 0)

	item, err := services.GetRecipe(database.C, uint(id))
	if err != nil {
		return err
	}

	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		if err := services.AttachRecipeRelationStatus(&user, &item); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(item)
}

func listRecipe(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)
	offset := c.QueryInt("offset", 0)

	tx, err := universalRecipeFilter(c, database.C)
	if err != nil {
		return err
	}

	count, err := services.CountRecipe(tx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListRecipe(tx, take, offset, "recipes.created_at DESC")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		if err := services.AttachRecipeRelationStatus(&user, items...); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func createRecipe(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data recipeWritePayload
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	write := services.RecipeWrite{
		Name:        data.Name,
		Text:        data.Text,
		CookingTime: data.CookingTime,
		Gallery:     data.Gallery,
		Ingredients: data.Ingredients,
		TagIDs:      data.Tags,
	}

	if len(data.Image) > 0 {
		image, err := services.SaveImageFromBase64(data.Image)
		if err != nil {
			return err
		}
		write.Image = &image
	}

	item, err := services.NewRecipe(user, write)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func editRecipe(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("recipeId", 0)

	item, err := services.GetRecipe(database.C, uint(id))
	if err != nil {
		return err
	}
	if item.AuthorID == nil || *item.AuthorID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "only the author can edit a recipe")
	}

	var data recipeWritePayload
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	write := services.RecipeWrite{
		Name:        data.Name,
		Text:        data.Text,
		CookingTime: data.CookingTime,
		Gallery:     data.Gallery,
		Ingredients: data.Ingredients,
		TagIDs:      data.Tags,
	}

	if len(data.Image) > 0 {
		image, err := services.SaveImageFromBase64(data.Image)
		if err != nil {
			return err
		}
		write.Image = &image
	}

	item, err = services.EditRecipe(item, write)
	if err != nil {
		return err
	}

	return c.JSON(item)
}

func deleteRecipe(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("recipeId", 0)

	item, err := services.GetRecipe(database.C, uint(id))
	if err != nil {
		return err
	}
	if item.AuthorID == nil || *item.AuthorID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "only the author can delete a recipe")
	}

	if err := services.DeleteRecipe(item); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func addRecipeFavorite(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("recipeId", 0)

	item, err := services.GetRecipe(database.C, uint(id))
	if err != nil {
		return err
	}

	if _, err := services.AddRecipeFavorite(user, item); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func removeRecipeFavorite(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("recipeId", 0)

	item, err := services.GetRecipe(database.C, uint(id))
	if err != nil {
		return err
	}

	if err := services.RemoveRecipeFavorite(user, item); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func addRecipeToShoppingCart(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("recipeId", 0)

	item, err := services.GetRecipe(database.C, uint(id))
	if err != nil {
		return err
	}

	if _, err := services.AddRecipeToShoppingCart(user, item); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func removeRecipeFromShoppingCart(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("recipeId", 0)

	item, err := services.GetRecipe(database.C, uint(id))
	if err != nil {
		return err
	}

	if err := services.RemoveRecipeFromShoppingCart(user, item); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

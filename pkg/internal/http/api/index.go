package api

import (
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		auth := api.Group("/auth").Name("Auth API")
		{
			auth.Post("/token/login", login)
		}

		users := api.Group("/users").Name("Users API")
		{
			users.Get("/", listUser)
			users.Post("/", createUser)
			users.Get("/me", getMe)
			users.Delete("/me", deleteMe)
			users.Get("/subscriptions", listSubscription)
			users.Get("/:userId", getUser)
			users.Post("/:userId/subscribe", subscribeToUser)
			users.Delete("/:userId/subscribe", unsubscribeFromUser)
		}

		tags := api.Group("/tags").Name("Tags API")
		{
			tags.Get("/", listTag)
			tags.Get("/:tagId", getTag)
		}

		ingredients := api.Group("/ingredients").Name("Ingredients API")
		{
			ingredients.Get("/", listIngredient)
			ingredients.Get("/:ingredientId", getIngredient)
		}

		recipes := api.Group("/recipes").Name("Recipes API")
		{
			recipes.Get("/", listRecipe)
			recipes.Post("/", createRecipe)
			recipes.Get("/download_shopping_cart", downloadShoppingCart)
			recipes.Get("/:recipeId", getRecipe)
			recipes.Patch("/:recipeId", editRecipe)
			recipes.Delete("/:recipeId", deleteRecipe)
			recipes.Post("/:recipeId/favorite", addRecipeFavorite)
			recipes.Delete("/:recipeId/favorite", removeRecipeFavorite)
			recipes.Post("/:recipeId/shopping_cart", addRecipeToShoppingCart)
			recipes.Delete("/:recipeId/shopping_cart", removeRecipeFromShoppingCart)
		}
	}
}

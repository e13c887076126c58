package services

import (
	"fmt"
	"strings"

	"github.com/openbites/cookbook/pkg/internal/database"
	"github.com/openbites/cookbook/pkg/internal/models"
)

// ShoppingListEntry is one consolidated ingredient group of a user's cart.
type ShoppingListEntry struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int64  `json:"total_amount"`
}

// ComputeShoppingList sums the ingredient lines of every recipe in the user's
// cart, grouped by (name, unit). Groups are ordered by name then unit so the
// rendered report is reproducible. An empty cart yields an empty list.
func ComputeShoppingList(user models.Account) ([]ShoppingListEntry, error) {
	var entries []ShoppingListEntry
	if err := database.C.
		Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.account_id = ?", user.ID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC, ingredients.measurement_unit ASC").
		Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("unable to aggregate shopping cart: %v", err)
	}

	if entries == nil {
		entries = []ShoppingListEntry{}
	}
	return entries, nil
}

const ShoppingListTitle = "Your shopping list:"

// RenderShoppingList writes the grouped entries as plain text, one
// "{name} - {total} {unit}" line per group under a fixed title. Paged
// document formats are the rendering collaborator's concern.
func RenderShoppingList(entries []ShoppingListEntry) []byte {
	var report strings.Builder
	report.WriteString(ShoppingListTitle)
	report.WriteString("\n\n")
	for _, entry := range entries {
		report.WriteString(fmt.Sprintf("%s - %d %s\n", entry.Name, entry.TotalAmount, entry.MeasurementUnit))
	}
	return []byte(report.String())
}

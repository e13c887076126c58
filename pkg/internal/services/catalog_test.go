package services

import (
	"testing"

	"github.com/openbites/cookbook/pkg/internal/database"
	"github.com/openbites/cookbook/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportIngredients(t *testing.T) {
	newTestDatabase(t)

	imported, err := ImportIngredients([]models.Ingredient{
		{Name: "Flour", MeasurementUnit: "g"},
		{Name: "Flour", MeasurementUnit: "kg"}, // same name, other unit is a distinct entry
	})
	require.NoError(t, err)
	require.Len(t, imported, 2)

	var conflictErr *ConflictError
	_, err = ImportIngredients([]models.Ingredient{
		{Name: "Flour", MeasurementUnit: "g"},
	})
	require.ErrorAs(t, err, &conflictErr)

	_, err = ImportIngredients([]models.Ingredient{
		{Name: "Salt", MeasurementUnit: "g"},
		{Name: "Salt", MeasurementUnit: "g"},
	})
	require.ErrorAs(t, err, &conflictErr)

	// A refused batch leaves no partial rows behind
	var count int64
	require.NoError(t, database.C.Model(&models.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSearchIngredientMatchesPrefix(t *testing.T) {
	newTestDatabase(t)

	_, err := ImportIngredients([]models.Ingredient{
		{Name: "Flour", MeasurementUnit: "g"},
		{Name: "Flaxseed", MeasurementUnit: "g"},
		{Name: "Milk", MeasurementUnit: "ml"},
	})
	require.NoError(t, err)

	matches, err := SearchIngredient(10, 0, "Fl")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = SearchIngredient(10, 0, "Milk")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "ml", matches[0].MeasurementUnit)
}

func TestTagValidation(t *testing.T) {
	newTestDatabase(t)

	var validationErr *ValidationError

	_, err := NewTag("Breakfast", "not-a-color", "breakfast")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "color", validationErr.Field)

	_, err = NewTag("Breakfast", "#49B64E", "has spaces")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "slug", validationErr.Field)

	// Three-digit shorthand colors pass
	tag, err := NewTag("Breakfast", "#4B5", "breakfast")
	require.NoError(t, err)

	var conflictErr *ConflictError
	_, err = NewTag("Breakfast", "#49B64E", "second-breakfast")
	require.ErrorAs(t, err, &conflictErr)
	_, err = NewTag("Second breakfast", "#49B64E", "breakfast")
	require.ErrorAs(t, err, &conflictErr)

	tag, err = EditTag(tag, "Brunch", "#49B64E", "brunch")
	require.NoError(t, err)
	assert.Equal(t, "brunch", tag.Slug)

	_, err = EditTag(tag, "Brunch", "#ZZZZZZ", "brunch")
	require.ErrorAs(t, err, &validationErr)
}

func TestDeleteTagDropsLinks(t *testing.T) {
	newTestDatabase(t)
	ingredients, tags := newTestCatalog(t)
	author := newTestAccount(t, "alice")

	item := newTestRecipe(t, author, "Pancakes", []IngredientLine{
		{IngredientID: ingredients[0].ID, Amount: 200},
	}, []uint{tags[0].ID})

	require.NoError(t, DeleteTag(tags[0]))

	var linkCount int64
	require.NoError(t, database.C.Model(&models.RecipeTag{}).Count(&linkCount).Error)
	assert.Zero(t, linkCount)

	got, err := GetRecipe(database.C, item.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}

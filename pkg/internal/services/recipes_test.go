package services

import (
	"testing"

	"github.com/openbites/cookbook/pkg/internal/database"
	"github.com/openbites/cookbook/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipeRoundTrip(t *testing.T) {
	newTestDatabase(t)
	ingredients, tags := newTestCatalog(t)
	author := newTestAccount(t, "alice")

	item := newTestRecipe(t, author, "Pancakes", []IngredientLine{
		{IngredientID: ingredients[0].ID, Amount: 200},
		{IngredientID: ingredients[1].ID, Amount: 300},
	}, []uint{tags[0].ID})

	require.NotZero(t, item.ID)
	require.NotNil(t, item.AuthorID)
	assert.Equal(t, author.ID, *item.AuthorID)
	assert.Equal(t, "Pancakes", item.Name)
	assert.Equal(t, 25, item.CookingTime)
	assert.Equal(t, "cover.png", item.Image)

	gotLines := lo.SliceToMap(item.Ingredients, func(line models.RecipeIngredient) (uint, int) {
		return line.IngredientID, line.Amount
	})
	assert.Equal(t, map[uint]int{
		ingredients[0].ID: 200,
		ingredients[1].ID: 300,
	}, gotLines)

	gotTags := lo.Map(item.Tags, func(tag models.Tag, index int) uint {
		return tag.ID
	})
	assert.ElementsMatch(t, []uint{tags[0].ID}, gotTags)

	// The resolved catalog entries ride along on the lines
	for _, line := range item.Ingredients {
		assert.NotEmpty(t, line.Ingredient.Name)
		assert.NotEmpty(t, line.Ingredient.MeasurementUnit)
	}
}

func TestNewRecipeRejectsDuplicateIngredient(t *testing.T) {
	newTestDatabase(t)
	ingredients, _ := newTestCatalog(t)
	author := newTestAccount(t, "alice")

	image := "cover.png"
	_, err := NewRecipe(author, RecipeWrite{
		Name:        "Pancakes",
		Text:        "Mix and bake.",
		CookingTime: 25,
		Image:       &image,
		Ingredients: []IngredientLine{
			{IngredientID: ingredients[0].ID, Amount: 2},
			{IngredientID: ingredients[0].ID, Amount: 3},
		},
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "ingredients", validationErr.Field)
	assert.Contains(t, validationErr.Reason, "more than once")

	// Nothing may land when validation fails
	var recipeCount, lineCount int64
	require.NoError(t, database.C.Model(&models.Recipe{}).Count(&recipeCount).Error)
	require.NoError(t, database.C.Model(&models.RecipeIngredient{}).Count(&lineCount).Error)
	assert.Zero(t, recipeCount)
	assert.Zero(t, lineCount)
}

func TestNewRecipeRejectsBadInput(t *testing.T) {
	newTestDatabase(t)
	ingredients, _ := newTestCatalog(t)
	author := newTestAccount(t, "alice")
	image := "cover.png"

	var validationErr *ValidationError
	var notFoundErr *NotFoundError

	_, err := NewRecipe(author, RecipeWrite{
		Name: "Pancakes", Text: "Bake.", CookingTime: 25, Image: &image,
		Ingredients: []IngredientLine{{IngredientID: ingredients[0].ID, Amount: 0}},
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "amount", validationErr.Field)

	_, err = NewRecipe(author, RecipeWrite{
		Name: "Pancakes", Text: "Bake.", CookingTime: 0, Image: &image,
		Ingredients: []IngredientLine{{IngredientID: ingredients[0].ID, Amount: 1}},
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "cooking_time", validationErr.Field)

	_, err = NewRecipe(author, RecipeWrite{
		Name: "Pancakes", Text: "Bake.", CookingTime: 25, Image: &image,
		Ingredients: []IngredientLine{},
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "ingredients", validationErr.Field)

	_, err = NewRecipe(author, RecipeWrite{
		Name: "Pancakes", Text: "Bake.", CookingTime: 25, Image: &image,
		Ingredients: []IngredientLine{{IngredientID: 9999, Amount: 1}},
	})
	require.ErrorAs(t, err, &notFoundErr)

	_, err = NewRecipe(author, RecipeWrite{
		Name: "Pancakes", Text: "Bake.", CookingTime: 25, Image: &image,
		Ingredients: []IngredientLine{{IngredientID: ingredients[0].ID, Amount: 1}},
		TagIDs:      []uint{9999},
	})
	require.ErrorAs(t, err, &notFoundErr)
}

func TestEditRecipeReplacesChildSets(t *testing.T) {
	newTestDatabase(t)
	ingredients, tags := newTestCatalog(t)
	author := newTestAccount(t, "alice")

	item := newTestRecipe(t, author, "Pancakes", []IngredientLine{
		{IngredientID: ingredients[0].ID, Amount: 200},
		{IngredientID: ingredients[1].ID, Amount: 300},
	}, []uint{tags[0].ID})

	// Replace with a disjoint set
	item, err := EditRecipe(item, RecipeWrite{
		Name:        "Omelette",
		Text:        "Whisk the eggs and fry.",
		CookingTime: 10,
		Ingredients: []IngredientLine{
			{IngredientID: ingredients[2].ID, Amount: 3},
		},
		TagIDs: []uint{tags[1].ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "Omelette", item.Name)
	assert.Equal(t, 10, item.CookingTime)
	// No note of the prior image in the write, the stored one stays
	assert.Equal(t, "cover.png", item.Image)

	gotLines := lo.SliceToMap(item.Ingredients, func(line models.RecipeIngredient) (uint, int) {
		return line.IngredientID, line.Amount
	})
	assert.Equal(t, map[uint]int{ingredients[2].ID: 3}, gotLines)

	gotTags := lo.Map(item.Tags, func(tag models.Tag, index int) uint {
		return tag.ID
	})
	assert.ElementsMatch(t, []uint{tags[1].ID}, gotTags)

	// No residue of the prior sets at the storage level either
	var lineCount int64
	require.NoError(t, database.C.Model(&models.RecipeIngredient{}).
		Where("recipe_id = ?", item.ID).
		Count(&lineCount).Error)
	assert.EqualValues(t, 1, lineCount)

	var linkCount int64
	require.NoError(t, database.C.Model(&models.RecipeTag{}).
		Where("recipe_id = ?", item.ID).
		Count(&linkCount).Error)
	assert.EqualValues(t, 1, linkCount)
}

func TestEditRecipeValidationLeavesOldState(t *testing.T) {
	newTestDatabase(t)
	ingredients, tags := newTestCatalog(t)
	author := newTestAccount(t, "alice")

	item := newTestRecipe(t, author, "Pancakes", []IngredientLine{
		{IngredientID: ingredients[0].ID, Amount: 200},
	}, []uint{tags[0].ID})

	_, err := EditRecipe(item, RecipeWrite{
		Name:        "Broken",
		Text:        "Bake.",
		CookingTime: 10,
		Ingredients: []IngredientLine{
			{IngredientID: ingredients[1].ID, Amount: -5},
		},
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	got, err := GetRecipe(database.C, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, ingredients[0].ID, got.Ingredients[0].IngredientID)
	assert.Equal(t, 200, got.Ingredients[0].Amount)
}

func TestEditRecipeReplacesImageWhenSupplied(t *testing.T) {
	newTestDatabase(t)
	ingredients, _ := newTestCatalog(t)
	author := newTestAccount(t, "alice")

	item := newTestRecipe(t, author, "Pancakes", []IngredientLine{
		{IngredientID: ingredients[0].ID, Amount: 200},
	}, nil)

	image := "new-cover.png"
	item, err := EditRecipe(item, RecipeWrite{
		Name:        "Pancakes",
		Text:        "Bake.",
		CookingTime: 25,
		Image:       &image,
		Ingredients: []IngredientLine{
			{IngredientID: ingredients[0].ID, Amount: 200},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "new-cover.png", item.Image)
}

func TestDeleteRecipeCascades(t *testing.T) {
	newTestDatabase(t)
	ingredients, tags := newTestCatalog(t)
	author := newTestAccount(t, "alice")
	fan := newTestAccount(t, "bob")

	item := newTestRecipe(t, author, "Pancakes", []IngredientLine{
		{IngredientID: ingredients[0].ID, Amount: 200},
	}, []uint{tags[0].ID})

	_, err := AddRecipeFavorite(fan, item)
	require.NoError(t, err)
	_, err = AddRecipeToShoppingCart(fan, item)
	require.NoError(t, err)

	require.NoError(t, DeleteRecipe(item))

	_, err = GetRecipe(database.C, item.ID)
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	for model, label := range map[any]string{
		&models.RecipeIngredient{}: "lines",
		&models.RecipeTag{}:        "links",
		&models.Favorite{}:         "favorites",
		&models.ShoppingCart{}:     "cart entries",
	} {
		var count int64
		require.NoError(t, database.C.Model(model).Count(&count).Error)
		assert.Zero(t, count, label)
	}
}

func TestDeleteAccountClearsAuthorReference(t *testing.T) {
	newTestDatabase(t)
	ingredients, _ := newTestCatalog(t)
	author := newTestAccount(t, "alice")

	item := newTestRecipe(t, author, "Pancakes", []IngredientLine{
		{IngredientID: ingredients[0].ID, Amount: 200},
	}, nil)

	require.NoError(t, DeleteAccount(author))

	got, err := GetRecipe(database.C, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AuthorID)
}

func TestListRecipeWithTagFilter(t *testing.T) {
	newTestDatabase(t)
	ingredients, tags := newTestCatalog(t)
	author := newTestAccount(t, "alice")

	newTestRecipe(t, author, "Pancakes", []IngredientLine{
		{IngredientID: ingredients[0].ID, Amount: 200},
	}, []uint{tags[0].ID})
	newTestRecipe(t, author, "Roast", []IngredientLine{
		{IngredientID: ingredients[2].ID, Amount: 2},
	}, []uint{tags[1].ID})

	items, err := ListRecipe(FilterRecipeWithTag(database.C, "breakfast"), 10, 0, "recipes.created_at DESC")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pancakes", items[0].Name)

	count, err := CountRecipe(FilterRecipeWithAuthor(database.C, author.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

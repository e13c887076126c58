package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/glebarez/sqlite"
	localCache "github.com/openbites/cookbook/pkg/internal/cache"
	"github.com/openbites/cookbook/pkg/internal/database"
	"github.com/openbites/cookbook/pkg/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDatabase(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "cookbook_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))

	if localCache.S == nil {
		require.NoError(t, localCache.NewStore())
	}
	// Account ids restart at 1 for every test database, drop anything cached
	// for a previous one.
	_ = cache.New[any](localCache.S).Invalidate(context.Background(), store.WithInvalidateTags([]string{"relation-status"}))

	database.C = db
}

func newTestAccount(t *testing.T, username string) models.Account {
	t.Helper()

	account, err := NewAccount(username, username+"@example.com", "Test", "User", "correct horse battery staple")
	require.NoError(t, err)
	return account
}

func newTestCatalog(t *testing.T) ([]models.Ingredient, []models.Tag) {
	t.Helper()

	ingredients, err := ImportIngredients([]models.Ingredient{
		{Name: "Flour", MeasurementUnit: "g"},
		{Name: "Milk", MeasurementUnit: "ml"},
		{Name: "Egg", MeasurementUnit: "pcs"},
		{Name: "Sugar", MeasurementUnit: "g"},
	})
	require.NoError(t, err)

	breakfast, err := NewTag("Breakfast", "#49B64E", "breakfast")
	require.NoError(t, err)
	dinner, err := NewTag("Dinner", "#8775D2", "dinner")
	require.NoError(t, err)

	return ingredients, []models.Tag{breakfast, dinner}
}

func newTestRecipe(t *testing.T, author models.Account, name string, lines []IngredientLine, tagIDs []uint) models.Recipe {
	t.Helper()

	image := "cover.png"
	item, err := NewRecipe(author, RecipeWrite{
		Name:        name,
		Text:        "Mix everything and bake until golden.",
		CookingTime: 25,
		Image:       &image,
		Ingredients: lines,
		TagIDs:      tagIDs,
	})
	require.NoError(t, err)
	return item
}

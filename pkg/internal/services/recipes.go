package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/openbites/cookbook/pkg/internal/database"
	"github.com/openbites/cookbook/pkg/internal/models"
	"github.com/pemistahl/lingua-go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientLine is one submitted (ingredient, amount) pair of a recipe write.
type IngredientLine struct {
	IngredientID uint `json:"id" validate:"required"`
	Amount       int  `json:"amount" validate:"required"`
}

// RecipeWrite is the full desired state of a recipe. Both the create and the
// edit path consume the complete ingredient and tag sets, there is no partial
// patch of single lines.
type RecipeWrite struct {
	Name        string
	Text        string
	CookingTime int
	Image       *string
	Gallery     []string
	Ingredients []IngredientLine
	TagIDs      []uint
}

func FilterRecipeWithAuthor(tx *gorm.DB, authorID uint) *gorm.DB {
	return tx.Where("author_id = ?", authorID)
}

func FilterRecipeWithTag(tx *gorm.DB, slug string) *gorm.DB {
	slugs := strings.Split(slug, ",")
	return tx.Joins("JOIN recipe_tags ON recipes.id = recipe_tags.recipe_id").
		Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
		Where("tags.slug IN ?", slugs).
		Group("recipes.id").
		Having("COUNT(DISTINCT tags.id) = ?", len(slugs))
}

func FilterRecipeFavoritedBy(tx *gorm.DB, userID uint) *gorm.DB {
	// The pair index keeps the join free of duplicates
	return tx.Joins("JOIN favorites ON recipes.id = favorites.recipe_id").
		Where("favorites.account_id = ?", userID)
}

func FilterRecipeInCartOf(tx *gorm.DB, userID uint) *gorm.DB {
	return tx.Joins("JOIN shopping_carts ON recipes.id = shopping_carts.recipe_id").
		Where("shopping_carts.account_id = ?", userID)
}

func FilterRecipeWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + probe + "%"
	return tx.Where("name LIKE ?", probe)
}

func PreloadRecipeGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Tags").
		Preload("Author").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient")
}

func GetRecipe(tx *gorm.DB, id uint) (models.Recipe, error) {
	var item models.Recipe
	if err := PreloadRecipeGeneral(tx).
		Where("recipes.id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, &NotFoundError{Resource: "recipe"}
		}
		return item, fmt.Errorf("unable to get recipe: %v", err)
	}

	return item, nil
}

func CountRecipe(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Recipe{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListRecipe(tx *gorm.DB, take int, offset int, order any) ([]*models.Recipe, error) {
	if take > 100 {
		take = 100
	}

	var items []*models.Recipe
	if err := PreloadRecipeGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

var languageDetector = sync.OnceValue(func() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Russian,
			lingua.Spanish,
			lingua.French,
			lingua.German,
			lingua.Italian,
			lingua.Japanese,
			lingua.Chinese,
		).
		WithLowAccuracyMode().
		Build()
})

func DetectRecipeLanguage(text string) string {
	if lang, ok := languageDetector().DetectLanguageOf(text); ok {
		return strings.ToLower(lang.IsoCode639_1().String())
	}
	return "unknown"
}

// validateRecipeWrite runs every check before a single row is touched. The
// first offending line wins the error report.
func validateRecipeWrite(write RecipeWrite) error {
	if write.CookingTime < 1 {
		return &ValidationError{Field: "cooking_time", Reason: "must be at least 1 minute"}
	}
	if len(write.Name) == 0 {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(write.Ingredients) == 0 {
		return &ValidationError{Field: "ingredients", Reason: "must contain at least one line"}
	}

	seen := make(map[uint]bool, len(write.Ingredients))
	for _, line := range write.Ingredients {
		if line.Amount < 1 {
			return &ValidationError{
				Field:  "amount",
				Reason: fmt.Sprintf("ingredient #%d must have an amount of at least 1", line.IngredientID),
			}
		}
		if seen[line.IngredientID] {
			return &ValidationError{
				Field:  "ingredients",
				Reason: fmt.Sprintf("ingredient #%d is listed more than once", line.IngredientID),
			}
		}
		seen[line.IngredientID] = true
	}

	ingredientIDs := lo.Map(write.Ingredients, func(line IngredientLine, index int) uint {
		return line.IngredientID
	})
	var count int64
	if err := database.C.Model(&models.Ingredient{}).
		Where("id IN ?", ingredientIDs).
		Count(&count).Error; err != nil {
		return fmt.Errorf("unable to count referenced ingredients: %v", err)
	}
	if int(count) != len(ingredientIDs) {
		return &NotFoundError{Resource: "referenced ingredient"}
	}

	if len(write.TagIDs) > 0 {
		tagIDs := lo.Uniq(write.TagIDs)
		if err := database.C.Model(&models.Tag{}).
			Where("id IN ?", tagIDs).
			Count(&count).Error; err != nil {
			return fmt.Errorf("unable to count referenced tags: %v", err)
		}
		if int(count) != len(tagIDs) {
			return &NotFoundError{Resource: "referenced tag"}
		}
	}

	return nil
}

func buildRecipeChildRows(recipeID uint, write RecipeWrite) ([]models.RecipeIngredient, []models.RecipeTag) {
	lines := lo.Map(write.Ingredients, func(line IngredientLine, index int) models.RecipeIngredient {
		return models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		}
	})
	links := lo.Map(lo.Uniq(write.TagIDs), func(id uint, index int) models.RecipeTag {
		return models.RecipeTag{
			RecipeID: recipeID,
			TagID:    id,
		}
	})
	return lines, links
}

// NewRecipe persists the recipe row, its full ingredient-line set and its full
// tag-link set as one transaction; nothing is visible when any step fails.
func NewRecipe(user models.Account, write RecipeWrite) (models.Recipe, error) {
	var item models.Recipe
	if err := validateRecipeWrite(write); err != nil {
		return item, err
	}

	if write.Image == nil || len(*write.Image) == 0 {
		return item, &ValidationError{Field: "image", Reason: "must be supplied on creation"}
	}

	item = models.Recipe{
		Name:        write.Name,
		Text:        write.Text,
		CookingTime: write.CookingTime,
		Image:       *write.Image,
		Gallery:     datatypes.NewJSONSlice(write.Gallery),
		Language:    DetectRecipeLanguage(write.Text),
		AuthorID:    &user.ID,
	}

	log.Debug().Str("name", write.Name).Msg("Saving recipe record into database...")
	start := time.Now()

	if err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
			return err
		}

		lines, links := buildRecipeChildRows(item.ID, write)
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return item, err
	}

	log.Debug().Dur("elapsed", time.Since(start)).Msg("The recipe is saved.")
	return GetRecipe(database.C, item.ID)
}

// EditRecipe overwrites the scalar fields and replaces both child collections
// wholesale. The stored image is kept when the write carries none.
func EditRecipe(item models.Recipe, write RecipeWrite) (models.Recipe, error) {
	if err := validateRecipeWrite(write); err != nil {
		return item, err
	}

	item.Name = write.Name
	item.Text = write.Text
	item.CookingTime = write.CookingTime
	item.Language = DetectRecipeLanguage(write.Text)
	if write.Image != nil && len(*write.Image) > 0 {
		item.Image = *write.Image
	}
	if write.Gallery != nil {
		item.Gallery = datatypes.NewJSONSlice(write.Gallery)
	}

	if err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RecipeIngredient{}, "recipe_id = ?", item.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.RecipeTag{}, "recipe_id = ?", item.ID).Error; err != nil {
			return err
		}

		lines, links := buildRecipeChildRows(item.ID, write)
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		return tx.Omit(clause.Associations).Save(&item).Error
	}); err != nil {
		return item, err
	}

	return GetRecipe(database.C, item.ID)
}

func DeleteRecipe(item models.Recipe) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RecipeIngredient{}, "recipe_id = ?", item.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.RecipeTag{}, "recipe_id = ?", item.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Favorite{}, "recipe_id = ?", item.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ShoppingCart{}, "recipe_id = ?", item.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

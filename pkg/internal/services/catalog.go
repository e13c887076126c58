package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/openbites/cookbook/pkg/internal/database"
	"github.com/openbites/cookbook/pkg/internal/models"
	"gorm.io/gorm"
)

var (
	tagColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
	tagSlugPattern  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

func SearchIngredient(take int, offset int, probe string) ([]models.Ingredient, error) {
	probe = probe + "%"

	var ingredients []models.Ingredient
	err := database.C.Where("name LIKE ?", probe).Offset(offset).Limit(take).Find(&ingredients).Error

	return ingredients, err
}

func ListIngredient(take int, offset int) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := database.C.Offset(offset).Limit(take).Order("name ASC").Find(&ingredients).Error

	return ingredients, err
}

func GetIngredient(id uint) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := database.C.Where("id = ?", id).First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ingredient, &NotFoundError{Resource: "ingredient"}
		}
		return ingredient, fmt.Errorf("unable to get ingredient: %v", err)
	}
	return ingredient, nil
}

// ImportIngredients bulk-loads catalog entries. The whole batch is refused
// when it collides with an already known (name, unit) pair, so a fixture can
// be re-checked before anything lands.
func ImportIngredients(entries []models.Ingredient) ([]models.Ingredient, error) {
	for idx, entry := range entries {
		if len(strings.TrimSpace(entry.Name)) == 0 {
			return nil, &ValidationError{Field: "name", Reason: fmt.Sprintf("entry #%d has an empty name", idx)}
		}
		if len(strings.TrimSpace(entry.MeasurementUnit)) == 0 {
			return nil, &ValidationError{Field: "measurement_unit", Reason: fmt.Sprintf("entry #%d has an empty unit", idx)}
		}
	}

	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		identity := entry.Name + "\x00" + entry.MeasurementUnit
		if seen[identity] {
			return nil, &ConflictError{Resource: fmt.Sprintf("ingredient %s (%s)", entry.Name, entry.MeasurementUnit)}
		}
		seen[identity] = true
	}

	for _, entry := range entries {
		var count int64
		if err := database.C.Model(&models.Ingredient{}).
			Where("name = ? AND measurement_unit = ?", entry.Name, entry.MeasurementUnit).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("unable to count existing ingredient: %v", err)
		}
		if count > 0 {
			return nil, &ConflictError{Resource: fmt.Sprintf("ingredient %s (%s)", entry.Name, entry.MeasurementUnit)}
		}
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&entries).Error
	})
	return entries, err
}

func ListTag(take int, offset int) ([]models.Tag, error) {
	var tags []models.Tag
	err := database.C.Offset(offset).Limit(take).Find(&tags).Error

	return tags, err
}

func GetTag(id uint) (models.Tag, error) {
	var tag models.Tag
	if err := database.C.Where("id = ?", id).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tag, &NotFoundError{Resource: "tag"}
		}
		return tag, fmt.Errorf("unable to get tag: %v", err)
	}
	return tag, nil
}

func GetTagBySlug(slug string) (models.Tag, error) {
	var tag models.Tag
	if err := database.C.Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tag, &NotFoundError{Resource: "tag"}
		}
		return tag, fmt.Errorf("unable to get tag: %v", err)
	}
	return tag, nil
}

func validateTag(name, color, slug string) error {
	if len(name) == 0 {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(color) > 0 && !tagColorPattern.MatchString(color) {
		return &ValidationError{Field: "color", Reason: "must be a hex color like #49B64E"}
	}
	if !tagSlugPattern.MatchString(slug) {
		return &ValidationError{Field: "slug", Reason: "may only contain letters, digits, dashes and underscores"}
	}
	return nil
}

func NewTag(name, color, slug string) (models.Tag, error) {
	var tag models.Tag
	if err := validateTag(name, color, slug); err != nil {
		return tag, err
	}

	var count int64
	if err := database.C.Model(&models.Tag{}).
		Where("name = ? OR slug = ?", name, slug).
		Count(&count).Error; err != nil {
		return tag, fmt.Errorf("unable to count existing tag: %v", err)
	}
	if count > 0 {
		return tag, &ConflictError{Resource: "tag"}
	}

	tag = models.Tag{
		Name:  name,
		Color: color,
		Slug:  slug,
	}

	err := database.C.Save(&tag).Error

	return tag, err
}

func EditTag(tag models.Tag, name, color, slug string) (models.Tag, error) {
	if err := validateTag(name, color, slug); err != nil {
		return tag, err
	}

	var count int64
	if err := database.C.Model(&models.Tag{}).
		Where("(name = ? OR slug = ?) AND id != ?", name, slug, tag.ID).
		Count(&count).Error; err != nil {
		return tag, fmt.Errorf("unable to count existing tag: %v", err)
	}
	if count > 0 {
		return tag, &ConflictError{Resource: "tag"}
	}

	tag.Name = name
	tag.Color = color
	tag.Slug = slug

	err := database.C.Save(&tag).Error

	return tag, err
}

func DeleteTag(tag models.Tag) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RecipeTag{}, "tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

package models

import (
	"gorm.io/datatypes"
)

type Recipe struct {
	BaseModel

	Name        string                      `json:"name"`
	Text        string                      `json:"text"`
	CookingTime int                         `json:"cooking_time"`
	Image       string                      `json:"image"`
	Gallery     datatypes.JSONSlice[string] `json:"gallery"`
	Language    string                      `json:"language"`

	Ingredients []RecipeIngredient `json:"ingredients" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tags        []Tag              `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`

	// The author reference is nulled when the account is deleted, the recipe
	// itself stays.
	AuthorID *uint    `json:"author_id"`
	Author   *Account `json:"author,omitempty" gorm:"constraint:OnDelete:SET NULL"`

	IsFavorited      bool `json:"is_favorited" gorm:"-"`
	IsInShoppingCart bool `json:"is_in_shopping_cart" gorm:"-"`
}

// RecipeIngredient rows live and die with their recipe: the write path always
// replaces the full set, it never patches single lines.
type RecipeIngredient struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	RecipeID     uint       `json:"recipe_id" gorm:"index:idx_recipe_ingredient_pair,unique"`
	IngredientID uint       `json:"ingredient_id" gorm:"index:idx_recipe_ingredient_pair,unique"`
	Amount       int        `json:"amount"`
	Ingredient   Ingredient `json:"ingredient"`
}

type RecipeTag struct {
	RecipeID uint `json:"recipe_id" gorm:"primaryKey"`
	TagID    uint `json:"tag_id" gorm:"primaryKey"`
}

func (RecipeTag) TableName() string { return "recipe_tags" }

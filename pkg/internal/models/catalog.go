package models

// Ingredient is a flat reference entry, bulk-loaded once and treated as
// immutable afterwards. The (name, measurement unit) pair is the real identity.
type Ingredient struct {
	BaseModel

	Name            string `json:"name" gorm:"index:idx_ingredient_identity,unique"`
	MeasurementUnit string `json:"measurement_unit" gorm:"index:idx_ingredient_identity,unique"`
}

type Tag struct {
	BaseModel

	Name  string `json:"name" gorm:"uniqueIndex"`
	Color string `json:"color"`
	Slug  string `json:"slug" gorm:"uniqueIndex" validate:"lowercase"`

	Recipes []Recipe `json:"recipes,omitempty" gorm:"many2many:recipe_tags"`
}

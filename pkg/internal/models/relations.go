package models

import "time"

// Relation rows are hard-deleted on removal so the pair indexes stay usable
// when a user toggles the same link again.

type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	AccountID uint   `json:"account_id" gorm:"index:idx_favorite_pair,unique"`
	RecipeID  uint   `json:"recipe_id" gorm:"index:idx_favorite_pair,unique"`
	Recipe    Recipe `json:"recipe"`
}

type ShoppingCart struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	AccountID uint   `json:"account_id" gorm:"index:idx_shopping_cart_pair,unique"`
	RecipeID  uint   `json:"recipe_id" gorm:"index:idx_shopping_cart_pair,unique"`
	Recipe    Recipe `json:"recipe"`
}

type Subscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	FollowerID uint    `json:"follower_id" gorm:"index:idx_subscription_pair,unique"`
	AuthorID   uint    `json:"author_id" gorm:"index:idx_subscription_pair,unique"`
	Author     Account `json:"author" gorm:"foreignKey:AuthorID"`
}

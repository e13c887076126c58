package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	localCache "github.com/openbites/cookbook/pkg/internal/cache"
	"github.com/openbites/cookbook/pkg/internal/database"
	"github.com/openbites/cookbook/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

func SubscribeToAccount(user models.Account, target models.Account) (models.Subscription, error) {
	var subscription models.Subscription
	if user.ID == target.ID {
		return subscription, &ValidationError{Field: "author", Reason: "cannot subscribe to yourself"}
	}

	if err := database.C.Where("follower_id = ? AND author_id = ?", user.ID, target.ID).First(&subscription).Error; err == nil {
		return subscription, &ConflictError{Resource: "subscription"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return subscription, fmt.Errorf("unable to check subscription is exists or not: %v", err)
	}

	subscription = models.Subscription{
		FollowerID: user.ID,
		AuthorID:   target.ID,
	}

	if err := database.C.Save(&subscription).Error; err != nil {
		return subscription, err
	}

	FlushRelationStatus(user.ID)
	return subscription, nil
}

func UnsubscribeFromAccount(user models.Account, target models.Account) error {
	var subscription models.Subscription
	if err := database.C.Where("follower_id = ? AND author_id = ?", user.ID, target.ID).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "subscription"}
		}
		return fmt.Errorf("unable to check subscription is exists or not: %v", err)
	}

	if err := database.C.Delete(&subscription).Error; err != nil {
		return err
	}

	FlushRelationStatus(user.ID)
	return nil
}

func CountSubscription(user models.Account) (int64, error) {
	var count int64
	err := database.C.Model(&models.Subscription{}).
		Where("follower_id = ?", user.ID).
		Count(&count).Error
	return count, err
}

// ListSubscription returns the followed authors with their recipes preloaded,
// newest recipe first.
func ListSubscription(user models.Account, take int, offset int) ([]models.Account, error) {
	if take > 100 {
		take = 100
	}

	var subscriptions []models.Subscription
	if err := database.C.Where("follower_id = ?", user.ID).
		Limit(take).Offset(offset).
		Order("id ASC").
		Preload("Author").
		Preload("Author.Recipes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Find(&subscriptions).Error; err != nil {
		return nil, err
	}

	return lo.Map(subscriptions, func(item models.Subscription, index int) models.Account {
		item.Author.IsSubscribed = true
		return item.Author
	}), nil
}

func AddRecipeFavorite(user models.Account, target models.Recipe) (models.Favorite, error) {
	var favorite models.Favorite
	if err := database.C.Where("account_id = ? AND recipe_id = ?", user.ID, target.ID).First(&favorite).Error; err == nil {
		return favorite, &ConflictError{Resource: "favorite"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return favorite, fmt.Errorf("unable to check favorite is exists or not: %v", err)
	}

	favorite = models.Favorite{
		AccountID: user.ID,
		RecipeID:  target.ID,
	}

	if err := database.C.Save(&favorite).Error; err != nil {
		return favorite, err
	}

	FlushRelationStatus(user.ID)
	return favorite, nil
}

func RemoveRecipeFavorite(user models.Account, target models.Recipe) error {
	var favorite models.Favorite
	if err := database.C.Where("account_id = ? AND recipe_id = ?", user.ID, target.ID).First(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "favorite"}
		}
		return fmt.Errorf("unable to check favorite is exists or not: %v", err)
	}

	if err := database.C.Delete(&favorite).Error; err != nil {
		return err
	}

	FlushRelationStatus(user.ID)
	return nil
}

func AddRecipeToShoppingCart(user models.Account, target models.Recipe) (models.ShoppingCart, error) {
	var entry models.ShoppingCart
	if err := database.C.Where("account_id = ? AND recipe_id = ?", user.ID, target.ID).First(&entry).Error; err == nil {
		return entry, &ConflictError{Resource: "shopping cart entry"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return entry, fmt.Errorf("unable to check shopping cart entry is exists or not: %v", err)
	}

	entry = models.ShoppingCart{
		AccountID: user.ID,
		RecipeID:  target.ID,
	}

	if err := database.C.Save(&entry).Error; err != nil {
		return entry, err
	}

	FlushRelationStatus(user.ID)
	return entry, nil
}

func RemoveRecipeFromShoppingCart(user models.Account, target models.Recipe) error {
	var entry models.ShoppingCart
	if err := database.C.Where("account_id = ? AND recipe_id = ?", user.ID, target.ID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "shopping cart entry"}
		}
		return fmt.Errorf("unable to check shopping cart entry is exists or not: %v", err)
	}

	if err := database.C.Delete(&entry).Error; err != nil {
		return err
	}

	FlushRelationStatus(user.ID)
	return nil
}

type relationStatus struct {
	Favorites []uint
	InCart    []uint
	Following []uint
}

func loadRelationStatus(userID uint) (relationStatus, error) {
	var state relationStatus
	var favorites []models.Favorite
	if err := database.C.Where("account_id = ?", userID).Find(&favorites).Error; err != nil {
		return state, err
	}
	var entries []models.ShoppingCart
	if err := database.C.Where("account_id = ?", userID).Find(&entries).Error; err != nil {
		return state, err
	}
	var subscriptions []models.Subscription
	if err := database.C.Where("follower_id = ?", userID).Find(&subscriptions).Error; err != nil {
		return state, err
	}

	state.Favorites = lo.Map(favorites, func(item models.Favorite, index int) uint {
		return item.RecipeID
	})
	state.InCart = lo.Map(entries, func(item models.ShoppingCart, index int) uint {
		return item.RecipeID
	})
	state.Following = lo.Map(subscriptions, func(item models.Subscription, index int) uint {
		return item.AuthorID
	})
	return state, nil
}

func getRelationStatus(userID uint) (relationStatus, error) {
	if localCache.S == nil {
		return loadRelationStatus(userID)
	}

	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	statusCacheKey := fmt.Sprintf("relation-status#%d", userID)
	statusCache, err := marshal.Get(ctx, statusCacheKey, new(relationStatus))
	if err == nil {
		return *statusCache.(*relationStatus), nil
	}

	state, err := loadRelationStatus(userID)
	if err != nil {
		return state, err
	}

	_ = marshal.Set(
		ctx,
		statusCacheKey,
		state,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{"relation-status", fmt.Sprintf("user#%d", userID)}),
	)
	return state, nil
}

func FlushRelationStatus(userID uint) {
	if localCache.S == nil {
		return
	}

	cacheManager := cache.New[any](localCache.S)
	ctx := context.Background()

	_ = cacheManager.Invalidate(ctx, store.WithInvalidateTags([]string{
		fmt.Sprintf("user#%d", userID),
	}))
}

// AttachRecipeRelationStatus fills the per-viewer is_favorited and
// is_in_shopping_cart view fields.
func AttachRecipeRelationStatus(user *models.Account, items ...*models.Recipe) error {
	if user == nil {
		return nil
	}

	state, err := getRelationStatus(user.ID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item == nil {
			continue
		}
		item.IsFavorited = lo.Contains(state.Favorites, item.ID)
		item.IsInShoppingCart = lo.Contains(state.InCart, item.ID)
	}
	return nil
}

// AttachAccountRelationStatus fills the per-viewer is_subscribed view field.
func AttachAccountRelationStatus(user *models.Account, items ...*models.Account) error {
	if user == nil {
		return nil
	}

	state, err := getRelationStatus(user.ID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item == nil {
			continue
		}
		item.IsSubscribed = lo.Contains(state.Following, item.ID)
	}
	return nil
}

package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

// recipeRelation is a user-recipe join row with a uniqueness guarantee
// on the pair. Favorites and the shopping cart share one contract, so
// they share one service parameterized over the row type.
type recipeRelation interface {
	models.FavoriteRecipe | models.ShoppingCart
}

// RelationService toggles a user-recipe relation of type R
type RelationService[R recipeRelation] struct {
	db    *gorm.DB
	build func(userID, recipeID uint) R
}

// NewFavoriteService binds the relation service to favorite rows
func NewFavoriteService(db *gorm.DB) *RelationService[models.FavoriteRecipe] {
	return &RelationService[models.FavoriteRecipe]{
		db: db,
		build: func(userID, recipeID uint) models.FavoriteRecipe {
			return models.FavoriteRecipe{UserID: userID, RecipeID: recipeID}
		},
	}
}

// NewShoppingCartService binds the relation service to cart rows
func NewShoppingCartService(db *gorm.DB) *RelationService[models.ShoppingCart] {
	return &RelationService[models.ShoppingCart]{
		db: db,
		build: func(userID, recipeID uint) models.ShoppingCart {
			return models.ShoppingCart{UserID: userID, RecipeID: recipeID}
		},
	}
}

// Add inserts the pair and returns the recipe summary. Duplicate pairs
// are ErrConflict, a missing recipe is ErrNotFound.
func (s *RelationService[R]) Add(ctx context.Context, userID, recipeID uint) (*types.RecipeSummary, error) {
	db := s.db.WithContext(ctx)

	var recipe models.Recipe
	if err := db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var count int64
	if err := db.Model(new(R)).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	row := s.build(userID, recipeID)
	if err := db.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	summary := summaryOf(&recipe)
	return &summary, nil
}

// Remove deletes the pair; a missing recipe or absent pair is ErrNotFound
func (s *RelationService[R]) Remove(ctx context.Context, userID, recipeID uint) error {
	db := s.db.WithContext(ctx)

	var recipe models.Recipe
	if err := db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	result := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(new(R))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

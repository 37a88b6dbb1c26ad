package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

// ShoppingListService aggregates ingredient quantities across every
// recipe in a user's shopping cart.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Build sums amounts grouped by (ingredient name, unit) over the cart.
// An empty cart is a normal empty result, never an error.
func (s *ShoppingListService) Build(ctx context.Context, userID uint) ([]types.ShoppingListItem, error) {
	var items []types.ShoppingListItem
	err := s.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Render formats the aggregated groups as the plain-text report
func (s *ShoppingListService) Render(items []types.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString("Shopping list:")
	for _, item := range items {
		fmt.Fprintf(&b, "\n- %s: %d %s", item.Name, item.Amount, item.MeasurementUnit)
	}
	return b.String()
}

// BuildReport runs Build and Render in one step for the download endpoint
func (s *ShoppingListService) BuildReport(ctx context.Context, userID uint) (string, error) {
	items, err := s.Build(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.Render(items), nil
}

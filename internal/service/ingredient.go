package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

// IngredientService exposes the read-only ingredient catalog
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// List returns ingredients, optionally filtered by a case-insensitive
// substring match on the name. Unpaginated, like the tag catalog.
func (s *IngredientService) List(ctx context.Context, name string) ([]types.IngredientView, error) {
	query := s.db.WithContext(ctx).Order("name, measurement_unit")
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}

	views := make([]types.IngredientView, 0, len(ingredients))
	for i := range ingredients {
		views = append(views, ingredientViewOf(&ingredients[i]))
	}
	return views, nil
}

func (s *IngredientService) Get(ctx context.Context, id uint) (*types.IngredientView, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	view := ingredientViewOf(&ingredient)
	return &view, nil
}

func ingredientViewOf(ingredient *models.Ingredient) types.IngredientView {
	return types.IngredientView{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

package database

import (
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
)

// Migrate applies the schema for every model in dependency order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeTag{},
		&models.RecipeIngredient{},
		&models.FavoriteRecipe{},
		&models.ShoppingCart{},
	)
}

package testhelpers

import (
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/platefeed/backend/internal/database"
	"github.com/platefeed/backend/internal/models"
)

// SetupTestDatabase opens an in-memory sqlite database with the full
// schema applied. A single connection keeps the in-memory database
// visible across transactions.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TestPassword is the plaintext password of every fixture user
const TestPassword = "correct-horse"

// CreateTestUser inserts a user whose password is TestPassword
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// CreateTestTag inserts a tag; name, slug and color must each be
// unique across fixtures.
func CreateTestTag(t *testing.T, db *gorm.DB, name, slug, color string) *models.Tag {
	t.Helper()

	tag := models.Tag{Name: name, Slug: slug, Color: color}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("failed to create test tag: %v", err)
	}
	return &tag
}

// CreateTestIngredient inserts a catalog ingredient
func CreateTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("failed to create test ingredient: %v", err)
	}
	return &ingredient
}

// CreateTestRecipe inserts a recipe row with one tag and one ingredient
// join, bypassing the service layer. Useful for read-path fixtures.
func CreateTestRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, tag *models.Tag, ingredient *models.Ingredient, amount int) *models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		Name:        name,
		Text:        "Steps for " + name,
		CookingTime: 10,
		Image:       fmt.Sprintf("/media/%s.png", name),
		AuthorID:    author.ID,
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	if tag != nil {
		if err := db.Create(&models.RecipeTag{RecipeID: recipe.ID, TagID: tag.ID}).Error; err != nil {
			t.Fatalf("failed to create recipe tag: %v", err)
		}
	}
	if ingredient != nil {
		ri := models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: ingredient.ID, Amount: amount}
		if err := db.Create(&ri).Error; err != nil {
			t.Fatalf("failed to create recipe ingredient: %v", err)
		}
	}
	return &recipe
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/testhelpers"
	"github.com/platefeed/backend/internal/types"
)

func TestShoppingListAggregatesAcrossRecipes(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	lists := service.NewShoppingListService(db)

	author := testhelpers.CreateTestUser(t, db, "author")
	shopper := testhelpers.CreateTestUser(t, db, "shopper")
	tag := testhelpers.CreateTestTag(t, db, "Dinner", "dinner", "#001122")
	salt := testhelpers.CreateTestIngredient(t, db, "Salt", "g")
	pepper := testhelpers.CreateTestIngredient(t, db, "Pepper", "g")

	soup := testhelpers.CreateTestRecipe(t, db, author, "Soup", tag, salt, 5)
	stew := testhelpers.CreateTestRecipe(t, db, author, "Stew", tag, salt, 3)
	require.NoError(t, db.Create(&models.RecipeIngredient{
		RecipeID: stew.ID, IngredientID: pepper.ID, Amount: 1,
	}).Error)

	for _, id := range []uint{soup.ID, stew.ID} {
		require.NoError(t, db.Create(&models.ShoppingCart{UserID: shopper.ID, RecipeID: id}).Error)
	}

	items, err := lists.Build(context.Background(), shopper.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Ordered by name, summed across recipes
	assert.Equal(t, types.ShoppingListItem{Name: "Pepper", MeasurementUnit: "g", Amount: 1}, items[0])
	assert.Equal(t, types.ShoppingListItem{Name: "Salt", MeasurementUnit: "g", Amount: 8}, items[1])
}

func TestShoppingListOnlyCountsOwnCart(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	lists := service.NewShoppingListService(db)

	author := testhelpers.CreateTestUser(t, db, "author")
	shopper := testhelpers.CreateTestUser(t, db, "shopper")
	other := testhelpers.CreateTestUser(t, db, "other")
	tag := testhelpers.CreateTestTag(t, db, "Dinner", "dinner", "#001122")
	salt := testhelpers.CreateTestIngredient(t, db, "Salt", "g")
	recipe := testhelpers.CreateTestRecipe(t, db, author, "Soup", tag, salt, 5)

	require.NoError(t, db.Create(&models.ShoppingCart{UserID: other.ID, RecipeID: recipe.ID}).Error)

	items, err := lists.Build(context.Background(), shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestShoppingListRender(t *testing.T) {
	lists := service.NewShoppingListService(nil)

	report := lists.Render([]types.ShoppingListItem{
		{Name: "Pepper", MeasurementUnit: "g", Amount: 1},
		{Name: "Salt", MeasurementUnit: "g", Amount: 8},
	})
	assert.Equal(t, "Shopping list:\n- Pepper: 1 g\n- Salt: 8 g", report)
}

func TestShoppingListEmptyCartReport(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	lists := service.NewShoppingListService(db)
	shopper := testhelpers.CreateTestUser(t, db, "shopper")

	// An empty cart is not an error, just a bare header
	report, err := lists.BuildReport(context.Background(), shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shopping list:", report)
}

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/platefeed/backend/internal/database"
	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/types"
)

// setupPostgres starts a disposable postgres container and migrates the
// schema into it. Skipped when no container runtime is available.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("SKIP_INTEGRATION") != "" {
		t.Skip("integration tests disabled")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections"),
			wait.ForListeningPort("5432/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("container runtime unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test sslmode=disable", host, port.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// TestRecipeLifecycleOnPostgres runs the write path against a real
// postgres so constraint translation and SQL dialect issues surface.
func TestRecipeLifecycleOnPostgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	users := service.NewUserService(db)
	author, err := users.Register(ctx, &types.RegisterRequest{
		Email:     "author@example.com",
		Username:  "author",
		FirstName: "A",
		LastName:  "B",
		Password:  "s3cure-pass",
	})
	require.NoError(t, err)

	// Duplicate email surfaces as a conflict through TranslateError
	_, err = users.Register(ctx, &types.RegisterRequest{
		Email:     "author@example.com",
		Username:  "author2",
		FirstName: "A",
		LastName:  "B",
		Password:  "s3cure-pass",
	})
	assert.ErrorIs(t, err, service.ErrConflict)

	tags := service.NewTagService(db)
	require.NoError(t, db.Exec(
		"INSERT INTO tags (name, slug, color) VALUES ('Dinner', 'dinner', '#001122')",
	).Error)
	allTags, err := tags.List(ctx)
	require.NoError(t, err)
	require.Len(t, allTags, 1)

	require.NoError(t, db.Exec(
		"INSERT INTO ingredients (name, measurement_unit) VALUES ('Salt', 'g')",
	).Error)
	ingredients := service.NewIngredientService(db)
	allIngredients, err := ingredients.List(ctx, "sal")
	require.NoError(t, err)
	require.Len(t, allIngredients, 1)

	recipes := service.NewRecipeService(db, integrationImageService(t))
	detail, err := recipes.Create(ctx, author.ID, &types.RecipeInput{
		Name:        "Soup",
		Text:        "Boil water, add salt.",
		CookingTime: 10,
		Image:       "data:image/png;base64,iVBORw0KGgo=",
		Tags:        []uint{allTags[0].ID},
		Ingredients: []types.RecipeIngredientInput{{ID: allIngredients[0].ID, Amount: 5}},
	})
	require.NoError(t, err)

	cart := service.NewShoppingCartService(db)
	_, err = cart.Add(ctx, author.ID, detail.ID)
	require.NoError(t, err)
	_, err = cart.Add(ctx, author.ID, detail.ID)
	assert.ErrorIs(t, err, service.ErrConflict)

	lists := service.NewShoppingListService(db)
	report, err := lists.BuildReport(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shopping list:\n- Salt: 5 g", report)

	require.NoError(t, recipes.Delete(ctx, detail.ID, author.ID))
	report, err = lists.BuildReport(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shopping list:", report)
}

func integrationImageService(t *testing.T) *service.ImageService {
	store, err := service.NewLocalImageStore(t.TempDir(), "/media")
	require.NoError(t, err)
	return service.NewImageService(store)
}

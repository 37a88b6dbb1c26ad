package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

// RecipeService handles recipe CRUD with full-replace tag/ingredient
// association semantics. Every multi-row write runs in one transaction.
type RecipeService struct {
	db     *gorm.DB
	images *ImageService
}

func NewRecipeService(db *gorm.DB, images *ImageService) *RecipeService {
	return &RecipeService{db: db, images: images}
}

// RecipeFilter narrows List results. Favorited and InCart are ignored
// when Viewer is nil, matching the anonymous-request contract.
type RecipeFilter struct {
	AuthorID  *uint
	TagSlugs  []string
	Favorited bool
	InCart    bool
	Viewer    *uint
	Page      int
	Limit     int
}

// Create validates the input and writes the recipe plus its tag and
// ingredient join rows atomically.
func (s *RecipeService) Create(ctx context.Context, authorID uint, input *types.RecipeInput) (*types.RecipeDetail, error) {
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}
	if input.Image == "" {
		return nil, validationErrorf("image is required")
	}

	imagePath, err := s.images.Store(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Name:        input.Name,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		Image:       imagePath,
		AuthorID:    authorID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return createAssociations(tx, recipe.ID, input)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID, &authorID)
}

// Update replaces the base fields and the entire association set:
// existing tag/ingredient rows are deleted and re-created from the input.
func (s *RecipeService) Update(ctx context.Context, recipeID, actorID uint, input *types.RecipeInput) (*types.RecipeDetail, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != actorID {
		return nil, ErrForbidden
	}

	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	imagePath := recipe.Image
	if input.Image != "" {
		path, err := s.images.Store(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		imagePath = path
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         input.Name,
			"text":         input.Text,
			"cooking_time": input.CookingTime,
			"image":        imagePath,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return createAssociations(tx, recipeID, input)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipeID, &actorID)
}

// Delete removes the recipe and every join row referencing it
func (s *RecipeService) Delete(ctx context.Context, recipeID, actorID uint) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if recipe.AuthorID != actorID {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, join := range []interface{}{
			&models.RecipeTag{},
			&models.RecipeIngredient{},
			&models.FavoriteRecipe{},
			&models.ShoppingCart{},
		} {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(join).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Recipe{}, recipeID).Error
	})
}

// Get returns the full recipe DTO with viewer-relative booleans
func (s *RecipeService) Get(ctx context.Context, id uint, viewerID *uint) (*types.RecipeDetail, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	detail := s.detailOf(s.db.WithContext(ctx), &recipe, viewerID)
	return &detail, nil
}

// List returns recipes newest first, filtered and paginated
func (s *RecipeService) List(ctx context.Context, filter RecipeFilter) ([]types.RecipeDetail, int64, error) {
	db := s.db.WithContext(ctx)

	build := func() *gorm.DB {
		query := db.Model(&models.Recipe{})
		if filter.AuthorID != nil {
			query = query.Where("recipes.author_id = ?", *filter.AuthorID)
		}
		if len(filter.TagSlugs) > 0 {
			tagged := db.Model(&models.RecipeTag{}).
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs)
			query = query.Where("recipes.id IN (?)", tagged)
		}
		if filter.Favorited && filter.Viewer != nil {
			favorited := db.Model(&models.FavoriteRecipe{}).
				Select("recipe_id").
				Where("user_id = ?", *filter.Viewer)
			query = query.Where("recipes.id IN (?)", favorited)
		}
		if filter.InCart && filter.Viewer != nil {
			carted := db.Model(&models.ShoppingCart{}).
				Select("recipe_id").
				Where("user_id = ?", *filter.Viewer)
			query = query.Where("recipes.id IN (?)", carted)
		}
		return query
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := build().
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	details := make([]types.RecipeDetail, 0, len(recipes))
	for i := range recipes {
		details = append(details, s.detailOf(db, &recipes[i], filter.Viewer))
	}
	return details, total, nil
}

// validateRecipeInput enforces the write rules: non-empty tag list,
// positive amounts, no duplicate ingredient references.
func validateRecipeInput(input *types.RecipeInput) error {
	if len(input.Tags) == 0 {
		return validationErrorf("at least one tag is required")
	}
	if input.CookingTime < 1 {
		return validationErrorf("cooking time must be positive")
	}
	if len(input.Ingredients) == 0 {
		return validationErrorf("at least one ingredient is required")
	}
	seen := make(map[uint]bool, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		if ing.Amount < 1 {
			return validationErrorf("ingredient amount must be at least 1")
		}
		if seen[ing.ID] {
			return validationErrorf("duplicate ingredient id %d", ing.ID)
		}
		seen[ing.ID] = true
	}
	return nil
}

// createAssociations bulk-inserts the tag and ingredient join rows.
// Every referenced tag and ingredient must exist, else the enclosing
// transaction rolls back with ErrNotFound.
func createAssociations(tx *gorm.DB, recipeID uint, input *types.RecipeInput) error {
	var tagCount int64
	if err := tx.Model(&models.Tag{}).Where("id IN ?", input.Tags).Count(&tagCount).Error; err != nil {
		return err
	}
	if tagCount != int64(len(input.Tags)) {
		return ErrNotFound
	}

	ingredientIDs := make([]uint, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		ingredientIDs = append(ingredientIDs, ing.ID)
	}
	var ingredientCount int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ingredientIDs).Count(&ingredientCount).Error; err != nil {
		return err
	}
	if ingredientCount != int64(len(ingredientIDs)) {
		return ErrNotFound
	}

	recipeTags := make([]models.RecipeTag, 0, len(input.Tags))
	for _, tagID := range input.Tags {
		recipeTags = append(recipeTags, models.RecipeTag{RecipeID: recipeID, TagID: tagID})
	}
	if err := tx.Create(&recipeTags).Error; err != nil {
		return err
	}

	recipeIngredients := make([]models.RecipeIngredient, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		recipeIngredients = append(recipeIngredients, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ing.ID,
			Amount:       ing.Amount,
		})
	}
	return tx.Create(&recipeIngredients).Error
}

func (s *RecipeService) detailOf(db *gorm.DB, recipe *models.Recipe, viewerID *uint) types.RecipeDetail {
	tags := make([]types.TagView, 0, len(recipe.Tags))
	for i := range recipe.Tags {
		tags = append(tags, tagViewOf(&recipe.Tags[i]))
	}

	ingredients := make([]types.RecipeIngredientView, 0, len(recipe.Ingredients))
	for i := range recipe.Ingredients {
		ri := &recipe.Ingredients[i]
		ingredients = append(ingredients, types.RecipeIngredientView{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}

	detail := types.RecipeDetail{
		ID:          recipe.ID,
		Tags:        tags,
		Author:      profileOf(&recipe.Author, isFollowing(db, viewerID, recipe.AuthorID)),
		Ingredients: ingredients,
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
	}

	if viewerID != nil {
		detail.IsFavorited = relationExists(db, &models.FavoriteRecipe{}, *viewerID, recipe.ID)
		detail.IsInShoppingCart = relationExists(db, &models.ShoppingCart{}, *viewerID, recipe.ID)
	}
	return detail
}

func relationExists(db *gorm.DB, model interface{}, userID, recipeID uint) bool {
	var count int64
	db.Model(model).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count)
	return count > 0
}

func summaryOf(recipe *models.Recipe) types.RecipeSummary {
	return types.RecipeSummary{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

// FollowService manages user-to-author subscriptions
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow subscribes userID to authorID and returns the author's profile
// with recipes, optionally capped by recipesLimit.
func (s *FollowService) Follow(ctx context.Context, userID, authorID uint, recipesLimit *int) (*types.UserWithRecipes, error) {
	if userID == authorID {
		return nil, validationErrorf("cannot subscribe to yourself")
	}

	db := s.db.WithContext(ctx)

	var author models.User
	if err := db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	follow := models.Follow{UserID: userID, AuthorID: authorID}
	if err := db.Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.authorWithRecipes(db, &author, recipesLimit)
}

// Unfollow removes the subscription; missing author or subscription is NotFound
func (s *FollowService) Unfollow(ctx context.Context, userID, authorID uint) error {
	db := s.db.WithContext(ctx)

	var author models.User
	if err := db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	result := db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFollowing returns paginated profiles of every author the user follows
func (s *FollowService) ListFollowing(ctx context.Context, userID uint, page, limit int, recipesLimit *int) ([]types.UserWithRecipes, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.User
	if err := db.
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("users.id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	result := make([]types.UserWithRecipes, 0, len(authors))
	for i := range authors {
		profile, err := s.authorWithRecipes(db, &authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *profile)
	}
	return result, total, nil
}

func (s *FollowService) authorWithRecipes(db *gorm.DB, author *models.User, recipesLimit *int) (*types.UserWithRecipes, error) {
	var recipesCount int64
	if err := db.Model(&models.Recipe{}).Where("author_id = ?", author.ID).Count(&recipesCount).Error; err != nil {
		return nil, err
	}

	query := db.Where("author_id = ?", author.ID).Order("id DESC")
	if recipesLimit != nil {
		query = query.Limit(*recipesLimit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	summaries := make([]types.RecipeSummary, 0, len(recipes))
	for i := range recipes {
		summaries = append(summaries, summaryOf(&recipes[i]))
	}

	return &types.UserWithRecipes{
		UserProfile:  profileOf(author, true),
		Recipes:      summaries,
		RecipesCount: recipesCount,
	}, nil
}

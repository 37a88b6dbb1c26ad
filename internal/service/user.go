package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

// UserService handles registration and account queries
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a user with a bcrypt-hashed password
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.UserProfile, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	profile := profileOf(&user, false)
	return &profile, nil
}

// Get returns a user profile with IsSubscribed computed for the viewer
func (s *UserService) Get(ctx context.Context, id uint, viewerID *uint) (*types.UserProfile, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	profile := profileOf(&user, isFollowing(s.db.WithContext(ctx), viewerID, user.ID))
	return &profile, nil
}

// List returns user profiles ordered by newest first
func (s *UserService) List(ctx context.Context, viewerID *uint, page, limit int) ([]types.UserProfile, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := db.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	profiles := make([]types.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, profileOf(&users[i], isFollowing(db, viewerID, users[i].ID)))
	}
	return profiles, total, nil
}

// SetPassword replaces the password after verifying the current one
func (s *UserService) SetPassword(ctx context.Context, userID uint, current, next string) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return validationErrorf("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&user).Update("password_hash", string(hashed)).Error
}

func profileOf(user *models.User, subscribed bool) types.UserProfile {
	return types.UserProfile{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: subscribed,
	}
}

// isFollowing reports whether viewer follows author; anonymous viewers never do
func isFollowing(db *gorm.DB, viewerID *uint, authorID uint) bool {
	if viewerID == nil {
		return false
	}
	var count int64
	db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", *viewerID, authorID).
		Count(&count)
	return count > 0
}

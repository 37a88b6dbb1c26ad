package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

// TagService exposes the read-only tag catalog
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) List(ctx context.Context) ([]types.TagView, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}

	views := make([]types.TagView, 0, len(tags))
	for i := range tags {
		views = append(views, tagViewOf(&tags[i]))
	}
	return views, nil
}

func (s *TagService) Get(ctx context.Context, id uint) (*types.TagView, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	view := tagViewOf(&tag)
	return &view, nil
}

func tagViewOf(tag *models.Tag) types.TagView {
	return types.TagView{
		ID:    tag.ID,
		Name:  tag.Name,
		Slug:  tag.Slug,
		Color: tag.Color,
	}
}

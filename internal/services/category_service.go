package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/eventsphere/backend/internal/apperrors"
	"github.com/eventsphere/backend/internal/dberrors"
	"github.com/eventsphere/backend/internal/logger"
	"github.com/eventsphere/backend/internal/models"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CategoryUpdate struct {
	Name *string
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	category := models.Category{Name: name}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("category %q already exists", name)
		}
		return nil, apperrors.Internal(err)
	}

	logger.Info().Uint("category_id", category.ID).Str("name", name).Msg("category created")
	return &category, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return &category, nil
}

func (s *CategoryService) List(ctx context.Context, skip, limit int) ([]models.Category, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var categories []models.Category
	if err := db.Order("name").Offset(skip).Limit(limit).Find(&categories).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return categories, total, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, update CategoryUpdate) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("category %d not found", id)
			}
			return apperrors.Internal(err)
		}

		if update.Name == nil {
			return apperrors.InvalidRequest("no fields to update")
		}

		category.Name = *update.Name
		if err := tx.Save(&category).Error; err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.Conflict("category %q already exists", *update.Name)
			}
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category unless events still reference it. The count in
// the error reflects the state inside the delete transaction, not a stale
// snapshot.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Category{}, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("category %d not found", id)
			}
			return apperrors.Internal(err)
		}

		var events int64
		if err := tx.Model(&models.Event{}).Where("category_id = ?", id).Count(&events).Error; err != nil {
			return apperrors.Internal(err)
		}
		if events > 0 {
			return apperrors.Conflict("cannot delete category %d: %d events still reference it", id, events)
		}

		if err := tx.Delete(&models.Category{}, id).Error; err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.Conflict("cannot delete category %d: events still reference it", id)
			}
			return apperrors.Internal(err)
		}

		logger.Info().Uint("category_id", id).Msg("category deleted")
		return nil
	})
}

package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/eventsphere/backend/internal/apperrors"
	"github.com/eventsphere/backend/internal/auth"
	"github.com/eventsphere/backend/internal/dberrors"
	"github.com/eventsphere/backend/internal/logger"
	"github.com/eventsphere/backend/internal/models"
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type ReviewCreate struct {
	EventID  uint
	AuthorID uint
	Comment  string
	Rating   int
}

type ReviewUpdate struct {
	Comment *string
	Rating  *int
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}

// Create inserts a review, one per author per event. The unique index is
// the enforcement; the existence pre-check answers the common duplicate
// before the insert reaches it.
func (s *ReviewService) Create(ctx context.Context, in ReviewCreate) (*models.Review, error) {
	if !validRating(in.Rating) {
		return nil, apperrors.InvalidRequest("rating must be between 1 and 5")
	}

	var review models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Event{}, in.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("event %d not found", in.EventID)
			}
			return apperrors.Internal(err)
		}

		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("author_id = ? AND event_id = ?", in.AuthorID, in.EventID).
			Count(&existing).Error; err != nil {
			return apperrors.Internal(err)
		}
		if existing > 0 {
			return apperrors.Conflict("user %d has already reviewed event %d", in.AuthorID, in.EventID)
		}

		review = models.Review{
			EventID:  in.EventID,
			AuthorID: in.AuthorID,
			Comment:  in.Comment,
			Rating:   in.Rating,
		}
		if err := tx.Create(&review).Error; err != nil {
			switch {
			case dberrors.IsUniqueViolation(err):
				return apperrors.Conflict("user %d has already reviewed event %d", in.AuthorID, in.EventID)
			case dberrors.IsForeignKeyViolation(err):
				return apperrors.NotFound("author %d not found", in.AuthorID)
			case dberrors.IsCheckViolation(err):
				return apperrors.InvalidRequest("rating must be between 1 and 5")
			}
			return apperrors.Internal(err)
		}

		if err := tx.Preload("Author").First(&review, review.ID).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Uint("review_id", review.ID).Uint("event_id", in.EventID).
		Int("rating", in.Rating).Msg("review created")
	return &review, nil
}

func (s *ReviewService) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).Preload("Author").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return &review, nil
}

// ListForEvent returns an event's reviews, newest first, optionally
// narrowed to a rating range.
func (s *ReviewService) ListForEvent(ctx context.Context, eventID uint, minRating, maxRating *int, skip, limit int) ([]models.Review, int64, error) {
	if minRating != nil && !validRating(*minRating) {
		return nil, 0, apperrors.InvalidRequest("rating must be between 1 and 5")
	}
	if maxRating != nil && !validRating(*maxRating) {
		return nil, 0, apperrors.InvalidRequest("rating must be between 1 and 5")
	}

	db := s.db.WithContext(ctx)
	if err := db.First(&models.Event{}, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("event %d not found", eventID)
		}
		return nil, 0, apperrors.Internal(err)
	}

	query := db.Model(&models.Review{}).Where("event_id = ?", eventID)
	if minRating != nil {
		query = query.Where("rating >= ?", *minRating)
	}
	if maxRating != nil {
		query = query.Where("rating <= ?", *maxRating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var reviews []models.Review
	if err := query.Preload("Author").Order("created_at DESC").
		Offset(skip).Limit(limit).Find(&reviews).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return reviews, total, nil
}

// ListForUser returns a user's reviews, newest first.
func (s *ReviewService) ListForUser(ctx context.Context, userID uint, skip, limit int) ([]models.Review, int64, error) {
	db := s.db.WithContext(ctx)
	if err := db.First(&models.User{}, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("user %d not found", userID)
		}
		return nil, 0, apperrors.Internal(err)
	}

	query := db.Model(&models.Review{}).Where("author_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var reviews []models.Review
	if err := query.Order("created_at DESC").Offset(skip).Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return reviews, total, nil
}

// Update applies the set fields of a partial update. Allowed for the
// review's author and admins.
func (s *ReviewService) Update(ctx context.Context, p auth.Principal, id uint, update ReviewUpdate) (*models.Review, error) {
	var review models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("review %d not found", id)
			}
			return apperrors.Internal(err)
		}

		if !auth.CanModifyResource(p, review.AuthorID) {
			return apperrors.Forbidden("only the review's author or an admin may update it")
		}

		if update.Comment == nil && update.Rating == nil {
			return apperrors.InvalidRequest("no fields to update")
		}

		if update.Comment != nil {
			review.Comment = *update.Comment
		}
		if update.Rating != nil {
			if !validRating(*update.Rating) {
				return apperrors.InvalidRequest("rating must be between 1 and 5")
			}
			review.Rating = *update.Rating
		}

		if err := tx.Save(&review).Error; err != nil {
			return apperrors.Internal(err)
		}

		if err := tx.Preload("Author").First(&review, review.ID).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes a review. Allowed for its author and admins.
func (s *ReviewService) Delete(ctx context.Context, p auth.Principal, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("review %d not found", id)
			}
			return apperrors.Internal(err)
		}

		if !auth.CanModifyResource(p, review.AuthorID) {
			return apperrors.Forbidden("only the review's author or an admin may delete it")
		}

		if err := tx.Delete(&models.Review{}, id).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}

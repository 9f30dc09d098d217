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

type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Subscribe makes follower a follower of followee. Following yourself is
// rejected, following twice conflicts.
func (s *SubscriptionService) Subscribe(ctx context.Context, followerID, followeeID uint) (*models.Subscription, error) {
	if followerID == followeeID {
		return nil, apperrors.InvalidRequest("cannot subscribe to yourself")
	}

	var subscription models.Subscription
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.User{}, followeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("user %d not found", followeeID)
			}
			return apperrors.Internal(err)
		}

		var existing int64
		if err := tx.Model(&models.Subscription{}).
			Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Count(&existing).Error; err != nil {
			return apperrors.Internal(err)
		}
		if existing > 0 {
			return apperrors.Conflict("already subscribed to user %d", followeeID)
		}

		subscription = models.Subscription{FollowerID: followerID, FolloweeID: followeeID}
		if err := tx.Create(&subscription).Error; err != nil {
			switch {
			case dberrors.IsUniqueViolation(err):
				return apperrors.Conflict("already subscribed to user %d", followeeID)
			case dberrors.IsCheckViolation(err):
				return apperrors.InvalidRequest("cannot subscribe to yourself")
			case dberrors.IsForeignKeyViolation(err):
				return apperrors.NotFound("user %d not found", followeeID)
			}
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Uint("follower_id", followerID).Uint("followee_id", followeeID).Msg("subscription created")
	return &subscription, nil
}

// Unsubscribe removes the follower/followee pair. Removing a subscription
// that does not exist succeeds: the end state is identical.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, followerID, followeeID uint) error {
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return apperrors.Internal(res.Error)
	}
	return nil
}

// ListFollowing returns the users that userID follows, most recent first.
func (s *SubscriptionService) ListFollowing(ctx context.Context, userID uint, skip, limit int) ([]models.User, int64, error) {
	return s.listRelated(ctx, userID,
		"JOIN subscriptions ON subscriptions.followee_id = users.id",
		"subscriptions.follower_id = ?", skip, limit)
}

// ListFollowers returns the users following userID, most recent first.
func (s *SubscriptionService) ListFollowers(ctx context.Context, userID uint, skip, limit int) ([]models.User, int64, error) {
	return s.listRelated(ctx, userID,
		"JOIN subscriptions ON subscriptions.follower_id = users.id",
		"subscriptions.followee_id = ?", skip, limit)
}

func (s *SubscriptionService) listRelated(ctx context.Context, userID uint, join, filter string, skip, limit int) ([]models.User, int64, error) {
	db := s.db.WithContext(ctx)
	if err := db.First(&models.User{}, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("user %d not found", userID)
		}
		return nil, 0, apperrors.Internal(err)
	}

	query := db.Model(&models.User{}).Joins(join).Where(filter, userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var users []models.User
	if err := query.Order("subscriptions.created_at DESC").
		Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return users, total, nil
}

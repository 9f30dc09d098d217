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

type ParticipationService struct {
	db *gorm.DB
}

func NewParticipationService(db *gorm.DB) *ParticipationService {
	return &ParticipationService{db: db}
}

// SetStatus records the user's attendance status for an event. The
// (user, event) pair maps onto at most one row: an existing row is updated
// in place, otherwise one is inserted. A concurrent insert losing the race
// on the unique key surfaces as a conflict rather than a second row.
func (s *ParticipationService) SetStatus(ctx context.Context, userID, eventID uint, status models.ParticipationStatus) (*models.Participation, error) {
	if !status.Valid() {
		return nil, apperrors.InvalidRequest("invalid participation status %q", status)
	}

	var participation models.Participation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Event{}, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("event %d not found", eventID)
			}
			return apperrors.Internal(err)
		}

		err := tx.Where("user_id = ? AND event_id = ?", userID, eventID).First(&participation).Error
		switch {
		case err == nil:
			if err := tx.Model(&participation).Update("status", status).Error; err != nil {
				return apperrors.Internal(err)
			}
			participation.Status = status
		case errors.Is(err, gorm.ErrRecordNotFound):
			participation = models.Participation{UserID: userID, EventID: eventID, Status: status}
			if err := tx.Create(&participation).Error; err != nil {
				if dberrors.IsUniqueViolation(err) {
					return apperrors.Conflict("participation for event %d already recorded", eventID)
				}
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.NotFound("event %d not found", eventID)
				}
				return apperrors.Internal(err)
			}
		default:
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Uint("user_id", userID).
		Uint("event_id", eventID).
		Str("status", string(participation.Status)).
		Msg("participation status set")
	return &participation, nil
}

// ListForEvent returns an event's participations, optionally filtered by
// status, with the participating users attached.
func (s *ParticipationService) ListForEvent(ctx context.Context, eventID uint, status *models.ParticipationStatus, skip, limit int) ([]models.Participation, int64, error) {
	if status != nil && !status.Valid() {
		return nil, 0, apperrors.InvalidRequest("invalid participation status %q", *status)
	}

	db := s.db.WithContext(ctx)
	if err := db.First(&models.Event{}, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("event %d not found", eventID)
		}
		return nil, 0, apperrors.Internal(err)
	}

	query := db.Model(&models.Participation{}).Where("event_id = ?", eventID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var participations []models.Participation
	if err := query.Preload("User").Order("joined_at DESC").
		Offset(skip).Limit(limit).Find(&participations).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return participations, total, nil
}

// ListForUser returns a user's participations with their events attached.
func (s *ParticipationService) ListForUser(ctx context.Context, userID uint, skip, limit int) ([]models.Participation, int64, error) {
	db := s.db.WithContext(ctx)

	query := db.Model(&models.Participation{}).Where("user_id = ?", userID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var participations []models.Participation
	if err := query.Preload("Event").Preload("Event.Category").Order("joined_at DESC").
		Offset(skip).Limit(limit).Find(&participations).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return participations, total, nil
}

// Delete removes a participation row. Allowed for its owner and admins.
func (s *ParticipationService) Delete(ctx context.Context, p auth.Principal, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var participation models.Participation
		if err := tx.First(&participation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("participation %d not found", id)
			}
			return apperrors.Internal(err)
		}

		if !auth.CanModifyResource(p, participation.UserID) {
			return apperrors.Forbidden("you may only remove your own participation")
		}

		if err := tx.Delete(&models.Participation{}, id).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}

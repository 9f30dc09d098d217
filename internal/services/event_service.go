package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/eventsphere/backend/internal/apperrors"
	"github.com/eventsphere/backend/internal/auth"
	"github.com/eventsphere/backend/internal/dberrors"
	"github.com/eventsphere/backend/internal/logger"
	"github.com/eventsphere/backend/internal/models"
)

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

type EventCreate struct {
	Title       string
	Description string
	EventDate   time.Time
	CategoryID  uint
}

type EventUpdate struct {
	Title       *string
	Description *string
	EventDate   *time.Time
	CategoryID  *uint
}

type EventFilter struct {
	CategoryID *uint
	AuthorID   *uint
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Create inserts an event. Only organizers and admins may create events,
// and the author is always the caller regardless of the payload.
func (s *EventService) Create(ctx context.Context, p auth.Principal, in EventCreate) (*models.Event, error) {
	if !auth.CanCreateEvent(p) {
		return nil, apperrors.Forbidden("only organizers and admins may create events")
	}

	event := models.Event{
		Title:       in.Title,
		Description: in.Description,
		EventDate:   in.EventDate,
		CategoryID:  in.CategoryID,
		AuthorID:    p.ID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Category{}, in.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("category %d not found", in.CategoryID)
			}
			return apperrors.Internal(err)
		}

		if err := tx.Create(&event).Error; err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.NotFound("category %d not found", in.CategoryID)
			}
			return apperrors.Internal(err)
		}

		if err := tx.Preload("Category").Preload("Author").First(&event, event.ID).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Uint("event_id", event.ID).Uint("author_id", p.ID).Msg("event created")
	return &event, nil
}

func (s *EventService) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).Preload("Category").Preload("Author").
		First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("event %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return &event, nil
}

// List returns events ordered by date, narrowed by whatever filters are
// set.
func (s *EventService) List(ctx context.Context, filter EventFilter, skip, limit int) ([]models.Event, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Event{})
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.DateFrom != nil {
		query = query.Where("event_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("event_date <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var events []models.Event
	if err := query.Preload("Category").Preload("Author").
		Order("event_date").Offset(skip).Limit(limit).Find(&events).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return events, total, nil
}

// Update applies the set fields of a partial update. Allowed for the
// event's author and admins.
func (s *EventService) Update(ctx context.Context, p auth.Principal, id uint, update EventUpdate) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("event %d not found", id)
			}
			return apperrors.Internal(err)
		}

		if !auth.CanModifyResource(p, event.AuthorID) {
			return apperrors.Forbidden("only the event's author or an admin may update it")
		}

		if update.Title == nil && update.Description == nil && update.EventDate == nil && update.CategoryID == nil {
			return apperrors.InvalidRequest("no fields to update")
		}

		if update.Title != nil {
			event.Title = *update.Title
		}
		if update.Description != nil {
			event.Description = *update.Description
		}
		if update.EventDate != nil {
			event.EventDate = *update.EventDate
		}
		if update.CategoryID != nil {
			if err := tx.First(&models.Category{}, *update.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("category %d not found", *update.CategoryID)
				}
				return apperrors.Internal(err)
			}
			event.CategoryID = *update.CategoryID
		}

		if err := tx.Save(&event).Error; err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.NotFound("category %d not found", event.CategoryID)
			}
			return apperrors.Internal(err)
		}

		if err := tx.Preload("Category").Preload("Author").First(&event, event.ID).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Delete removes an event, but only once nothing references it: dependent
// participations, tickets, comments and reviews block the delete with a
// conflict naming the live counts. Wiping an event together with its
// dependents happens only through account deletion.
func (s *EventService) Delete(ctx context.Context, p auth.Principal, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("event %d not found", id)
			}
			return apperrors.Internal(err)
		}

		if !auth.CanModifyResource(p, event.AuthorID) {
			return apperrors.Forbidden("only the event's author or an admin may delete it")
		}

		var participations, tickets, comments, reviews int64
		counts := []struct {
			model any
			dest  *int64
		}{
			{&models.Participation{}, &participations},
			{&models.Ticket{}, &tickets},
			{&models.Comment{}, &comments},
			{&models.Review{}, &reviews},
		}
		for _, c := range counts {
			if err := tx.Model(c.model).Where("event_id = ?", id).Count(c.dest).Error; err != nil {
				return apperrors.Internal(err)
			}
		}
		if participations+tickets+comments+reviews > 0 {
			return apperrors.Conflict(
				"cannot delete event %d: %d participations, %d tickets, %d comments and %d reviews still reference it",
				id, participations, tickets, comments, reviews)
		}

		if err := tx.Delete(&models.Event{}, id).Error; err != nil {
			return apperrors.Internal(err)
		}

		logger.Info().Uint("event_id", id).Msg("event deleted")
		return nil
	})
}

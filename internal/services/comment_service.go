package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/eventsphere/backend/internal/apperrors"
	"github.com/eventsphere/backend/internal/auth"
	"github.com/eventsphere/backend/internal/dberrors"
	"github.com/eventsphere/backend/internal/logger"
	"github.com/eventsphere/backend/internal/models"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

type CommentCreate struct {
	EventID         uint
	AuthorID        uint
	Text            string
	ParentCommentID *uint
}

// Create inserts a comment or reply. A reply's depth is its parent's plus
// one, capped at models.MaxCommentDepth, and the parent's reply count is
// incremented in the same transaction as the insert so the two never
// drift apart.
func (s *CommentService) Create(ctx context.Context, in CommentCreate) (*models.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, apperrors.InvalidRequest("comment text must not be empty")
	}

	var comment models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Event{}, in.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("event %d not found", in.EventID)
			}
			return apperrors.Internal(err)
		}

		depth := 0
		if in.ParentCommentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, *in.ParentCommentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("parent comment %d not found", *in.ParentCommentID)
				}
				return apperrors.Internal(err)
			}
			if parent.EventID != in.EventID {
				return apperrors.InvalidRequest("parent comment belongs to a different event")
			}
			if parent.Depth >= models.MaxCommentDepth {
				return apperrors.InvalidRequest("maximum reply depth of %d reached", models.MaxCommentDepth)
			}
			depth = parent.Depth + 1

			if err := tx.Model(&models.Comment{}).Where("id = ?", parent.ID).
				UpdateColumn("reply_count", gorm.Expr("reply_count + ?", 1)).Error; err != nil {
				return apperrors.Internal(err)
			}
		}

		comment = models.Comment{
			EventID:         in.EventID,
			AuthorID:        in.AuthorID,
			Text:            in.Text,
			ParentCommentID: in.ParentCommentID,
			Depth:           depth,
		}
		if err := tx.Create(&comment).Error; err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.NotFound("author %d not found", in.AuthorID)
			}
			return apperrors.Internal(err)
		}

		if err := tx.Preload("Author").First(&comment, comment.ID).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Uint("comment_id", comment.ID).Uint("event_id", comment.EventID).
		Int("depth", comment.Depth).Msg("comment created")
	return &comment, nil
}

// Update rewrites a comment's text. Only the author may edit.
func (s *CommentService) Update(ctx context.Context, p auth.Principal, id uint, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.InvalidRequest("comment text must not be empty")
	}

	var comment models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("comment %d not found", id)
			}
			return apperrors.Internal(err)
		}

		if !auth.CanUpdateComment(p, comment.AuthorID) {
			return apperrors.Forbidden("only the author may edit a comment")
		}

		if err := tx.Model(&comment).Update("text", text).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Preload("Author").First(&comment, comment.ID).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment and, through the parent_comment_id cascade, its
// whole subtree. Allowed for the author and admins.
func (s *CommentService) Delete(ctx context.Context, p auth.Principal, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("comment %d not found", id)
			}
			return apperrors.Internal(err)
		}

		if !auth.CanDeleteComment(p, comment.AuthorID) {
			return apperrors.Forbidden("only the author or an admin may delete a comment")
		}

		return s.deleteInTx(tx, &comment)
	})
}

// deleteInTx removes one comment inside an open transaction, decrementing
// its parent's reply count first. Descendants disappear with the row via
// the storage cascade; their counters die with them.
func (s *CommentService) deleteInTx(tx *gorm.DB, comment *models.Comment) error {
	if comment.ParentCommentID != nil {
		// Floored at zero: a parent's count must never go negative even
		// if it was already inconsistent.
		if err := tx.Model(&models.Comment{}).
			Where("id = ? AND reply_count > 0", *comment.ParentCommentID).
			UpdateColumn("reply_count", gorm.Expr("reply_count - ?", 1)).Error; err != nil {
			return apperrors.Internal(err)
		}
	}

	if err := tx.Delete(&models.Comment{}, comment.ID).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// DeleteAuthoredBy removes every comment authored by the user, one at a
// time inside the caller's transaction. Each pass re-queries because
// deleting one comment may cascade away other comments of the same author
// further down the thread.
func (s *CommentService) DeleteAuthoredBy(tx *gorm.DB, authorID uint) error {
	for {
		var comment models.Comment
		err := tx.Where("author_id = ?", authorID).Order("id").First(&comment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return apperrors.Internal(err)
		}
		if err := s.deleteInTx(tx, &comment); err != nil {
			return err
		}
	}
}

// GetByID returns a comment with its full reply subtree and authors.
func (s *CommentService) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	query := s.db.WithContext(ctx).Preload("Author")
	path := "Replies"
	for i := 0; i < models.MaxCommentDepth; i++ {
		query = query.Preload(path + ".Author")
		path += ".Replies"
	}

	var comment models.Comment
	if err := query.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return &comment, nil
}

// ListForEvent returns an event's top-level comments, newest first, each
// carrying two levels of replies.
func (s *CommentService) ListForEvent(ctx context.Context, eventID uint, skip, limit int) ([]models.Comment, int64, error) {
	db := s.db.WithContext(ctx)
	if err := db.First(&models.Event{}, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("event %d not found", eventID)
		}
		return nil, 0, apperrors.Internal(err)
	}

	query := db.Model(&models.Comment{}).
		Where("event_id = ? AND parent_comment_id IS NULL", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var comments []models.Comment
	if err := query.
		Preload("Author").
		Preload("Replies.Author").
		Preload("Replies.Replies.Author").
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return comments, total, nil
}

// ListForUser returns a user's comments across all events, newest first.
func (s *CommentService) ListForUser(ctx context.Context, userID uint, skip, limit int) ([]models.Comment, int64, error) {
	db := s.db.WithContext(ctx)
	if err := db.First(&models.User{}, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("user %d not found", userID)
		}
		return nil, 0, apperrors.Internal(err)
	}

	query := db.Model(&models.Comment{}).Where("author_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var comments []models.Comment
	if err := query.Preload("Author").Order("created_at DESC").
		Offset(skip).Limit(limit).Find(&comments).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return comments, total, nil
}

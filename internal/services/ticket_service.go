package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/eventsphere/backend/internal/apperrors"
	"github.com/eventsphere/backend/internal/auth"
	"github.com/eventsphere/backend/internal/dberrors"
	"github.com/eventsphere/backend/internal/logger"
	"github.com/eventsphere/backend/internal/models"
)

type TicketService struct {
	db     *gorm.DB
	secret string
}

func NewTicketService(db *gorm.DB, secret string) *TicketService {
	return &TicketService{db: db, secret: secret}
}

// Issue records a ticket for the user, one per user per event. Price is
// record keeping only; nothing is charged.
func (s *TicketService) Issue(ctx context.Context, userID, eventID uint, price float64) (*models.Ticket, error) {
	if price < 0 {
		return nil, apperrors.InvalidRequest("price must not be negative")
	}

	var ticket models.Ticket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Event{}, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("event %d not found", eventID)
			}
			return apperrors.Internal(err)
		}

		var existing int64
		if err := tx.Model(&models.Ticket{}).
			Where("user_id = ? AND event_id = ?", userID, eventID).
			Count(&existing).Error; err != nil {
			return apperrors.Internal(err)
		}
		if existing > 0 {
			return apperrors.Conflict("user %d already holds a ticket for event %d", userID, eventID)
		}

		ticket = models.Ticket{UserID: userID, EventID: eventID, Price: price}
		if err := tx.Create(&ticket).Error; err != nil {
			switch {
			case dberrors.IsUniqueViolation(err):
				return apperrors.Conflict("user %d already holds a ticket for event %d", userID, eventID)
			case dberrors.IsForeignKeyViolation(err):
				return apperrors.NotFound("user %d not found", userID)
			}
			return apperrors.Internal(err)
		}

		if err := tx.Preload("Event.Category").Preload("Event.Author").
			First(&ticket, ticket.ID).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Uint("ticket_id", ticket.ID).Uint("user_id", userID).
		Uint("event_id", eventID).Msg("ticket issued")
	return &ticket, nil
}

// Get returns a ticket. Allowed for its holder, the author of its event,
// and admins.
func (s *TicketService) Get(ctx context.Context, p auth.Principal, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.WithContext(ctx).Preload("Event.Category").Preload("Event.Author").
		First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("ticket %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}

	if !auth.CanAccessTicket(p, ticket.UserID, eventAuthorID(&ticket)) {
		return nil, apperrors.Forbidden("you may not access this ticket")
	}
	return &ticket, nil
}

// Delete removes a ticket. Same access rule as Get.
func (s *TicketService) Delete(ctx context.Context, p auth.Principal, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		if err := tx.Preload("Event").First(&ticket, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("ticket %d not found", id)
			}
			return apperrors.Internal(err)
		}

		if !auth.CanAccessTicket(p, ticket.UserID, eventAuthorID(&ticket)) {
			return apperrors.Forbidden("you may not delete this ticket")
		}

		if err := tx.Delete(&models.Ticket{}, id).Error; err != nil {
			return apperrors.Internal(err)
		}

		logger.Info().Uint("ticket_id", id).Msg("ticket deleted")
		return nil
	})
}

// ListForUser returns a user's tickets, newest first. Users see their own;
// admins see anyone's.
func (s *TicketService) ListForUser(ctx context.Context, p auth.Principal, userID uint, skip, limit int) ([]models.Ticket, int64, error) {
	if p.ID != userID && !p.IsAdmin() {
		return nil, 0, apperrors.Forbidden("you may only list your own tickets")
	}

	db := s.db.WithContext(ctx)
	if err := db.First(&models.User{}, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("user %d not found", userID)
		}
		return nil, 0, apperrors.Internal(err)
	}

	query := db.Model(&models.Ticket{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var tickets []models.Ticket
	if err := query.Preload("Event.Category").Preload("Event.Author").
		Order("purchased_at DESC").Offset(skip).Limit(limit).
		Find(&tickets).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return tickets, total, nil
}

// ListForEvent returns an event's tickets with their holders. Allowed for
// the event's author and admins.
func (s *TicketService) ListForEvent(ctx context.Context, p auth.Principal, eventID uint, skip, limit int) ([]models.Ticket, int64, error) {
	db := s.db.WithContext(ctx)

	var event models.Event
	if err := db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("event %d not found", eventID)
		}
		return nil, 0, apperrors.Internal(err)
	}

	if !auth.CanModifyResource(p, event.AuthorID) {
		return nil, 0, apperrors.Forbidden("only the event's author or an admin may list its tickets")
	}

	query := db.Model(&models.Ticket{}).Where("event_id = ?", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var tickets []models.Ticket
	if err := query.Preload("User").Order("purchased_at DESC").
		Offset(skip).Limit(limit).Find(&tickets).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return tickets, total, nil
}

// QRCodePNG renders the ticket's signed admission code as a PNG QR image.
// Same access rule as Get.
func (s *TicketService) QRCodePNG(ctx context.Context, p auth.Principal, id uint) ([]byte, error) {
	ticket, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(s.admissionCode(ticket), qrcode.Medium, 256)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return png, nil
}

// ValidateCode checks a scanned admission code at the door. Only the
// event's author and admins may run check-in.
func (s *TicketService) ValidateCode(ctx context.Context, p auth.Principal, code string) (*models.Ticket, error) {
	parts := strings.Split(code, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[0], "ticket:") || !strings.HasPrefix(parts[3], "signature:") {
		return nil, apperrors.InvalidRequest("malformed admission code")
	}

	ticketID, err := strconv.ParseUint(strings.TrimPrefix(parts[0], "ticket:"), 10, 64)
	if err != nil {
		return nil, apperrors.InvalidRequest("malformed admission code")
	}

	var ticket models.Ticket
	if err := s.db.WithContext(ctx).Preload("Event").Preload("User").
		First(&ticket, uint(ticketID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("ticket %d not found", ticketID)
		}
		return nil, apperrors.Internal(err)
	}

	signature := strings.TrimPrefix(parts[3], "signature:")
	if !hmac.Equal([]byte(s.sign(&ticket)), []byte(signature)) {
		return nil, apperrors.InvalidRequest("invalid admission code signature")
	}

	if !auth.CanModifyResource(p, eventAuthorID(&ticket)) {
		return nil, apperrors.Forbidden("only the event's author or an admin may validate tickets")
	}

	logger.Info().Uint("ticket_id", ticket.ID).Uint("validated_by", p.ID).Msg("ticket validated")
	return &ticket, nil
}

func (s *TicketService) admissionCode(t *models.Ticket) string {
	return fmt.Sprintf("ticket:%d;event:%d;user:%d;signature:%s", t.ID, t.EventID, t.UserID, s.sign(t))
}

func (s *TicketService) sign(t *models.Ticket) string {
	data := fmt.Sprintf("%d:%d:%d", t.ID, t.EventID, t.UserID)
	h := hmac.New(sha256.New, []byte(s.secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func eventAuthorID(t *models.Ticket) uint {
	if t.Event == nil {
		return 0
	}
	return t.Event.AuthorID
}

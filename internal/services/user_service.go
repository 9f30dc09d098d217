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

type UserService struct {
	db       *gorm.DB
	comments *CommentService
}

func NewUserService(db *gorm.DB, comments *CommentService) *UserService {
	return &UserService{db: db, comments: comments}
}

type UserCreate struct {
	Name     string
	Email    string
	Password string
	Bio      string
	Role     models.UserRole
}

type UserUpdate struct {
	Name     *string
	Email    *string
	Bio      *string
	Role     *models.UserRole
	IsActive *bool
}

// Register creates a regular active account. Role and active status are
// not caller inputs here.
func (s *UserService) Register(ctx context.Context, name, email, password, bio string) (*models.User, error) {
	return s.create(ctx, UserCreate{Name: name, Email: email, Password: password, Bio: bio, Role: models.RoleUser})
}

// Create makes an account with any role. Reached only through the admin
// surface.
func (s *UserService) Create(ctx context.Context, in UserCreate) (*models.User, error) {
	if !in.Role.Valid() {
		return nil, apperrors.InvalidRequest("invalid role %q", in.Role)
	}
	return s.create(ctx, in)
}

func (s *UserService) create(ctx context.Context, in UserCreate) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		Bio:          in.Bio,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("email %s is already registered", in.Email)
		}
		return nil, apperrors.Internal(err)
	}

	logger.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return &user, nil
}

// Authenticate verifies credentials. Unknown email and wrong password
// produce the same answer so the endpoint cannot be used to probe for
// registered addresses.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthenticated("invalid email or password")
		}
		return nil, apperrors.Internal(err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.Unauthenticated("invalid email or password")
	}
	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context, skip, limit int) ([]models.User, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var users []models.User
	if err := db.Order("id").Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return users, total, nil
}

// Update merges the set fields into the account. Users may edit their own
// name, email and bio; role and active status move only under an admin.
func (s *UserService) Update(ctx context.Context, p auth.Principal, id uint, update UserUpdate) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("user %d not found", id)
			}
			return apperrors.Internal(err)
		}

		if !auth.CanModifyResource(p, user.ID) {
			return apperrors.Forbidden("you may only update your own account")
		}
		if (update.Role != nil || update.IsActive != nil) && !auth.CanSetAccountControls(p) {
			return apperrors.Forbidden("only admins may change role or active status")
		}

		if update.Name == nil && update.Email == nil && update.Bio == nil &&
			update.Role == nil && update.IsActive == nil {
			return apperrors.InvalidRequest("no fields to update")
		}

		if update.Name != nil {
			user.Name = *update.Name
		}
		if update.Email != nil {
			user.Email = *update.Email
		}
		if update.Bio != nil {
			user.Bio = *update.Bio
		}
		if update.Role != nil {
			if !update.Role.Valid() {
				return apperrors.InvalidRequest("invalid role %q", *update.Role)
			}
			user.Role = *update.Role
		}
		if update.IsActive != nil {
			user.IsActive = *update.IsActive
		}

		if err := tx.Save(&user).Error; err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.Conflict("email %s is already registered", user.Email)
			}
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword rotates the caller's own password after verifying the
// current one.
func (s *UserService) ChangePassword(ctx context.Context, p auth.Principal, id uint, current, newPassword string) error {
	if p.ID != id {
		return apperrors.Forbidden("you may only change your own password")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("user %d not found", id)
			}
			return apperrors.Internal(err)
		}

		if !auth.CheckPassword(user.PasswordHash, current) {
			return apperrors.InvalidRequest("current password is incorrect")
		}

		hash, err := auth.HashPassword(newPassword)
		if err != nil {
			return apperrors.Internal(err)
		}

		if err := tx.Model(&user).Update("password_hash", hash).Error; err != nil {
			return apperrors.Internal(err)
		}

		logger.Info().Uint("user_id", id).Msg("password changed")
		return nil
	})
}

// Delete removes the account and everything it owns. The user's comments
// go through the comment engine first so reply counts on surviving threads
// stay exact; participations, subscriptions, reviews, tickets and authored
// events with their dependents follow through the storage cascades, all in
// one transaction.
func (s *UserService) Delete(ctx context.Context, p auth.Principal, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("user %d not found", id)
			}
			return apperrors.Internal(err)
		}

		if !auth.CanModifyResource(p, user.ID) {
			return apperrors.Forbidden("you may only delete your own account")
		}

		if err := s.comments.DeleteAuthoredBy(tx, id); err != nil {
			return err
		}

		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return apperrors.Internal(err)
		}

		logger.Info().Uint("user_id", id).Uint("deleted_by", p.ID).Msg("user deleted")
		return nil
	})
}

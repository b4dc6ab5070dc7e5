package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/amirphl/Omoikane/models"
	"github.com/amirphl/Omoikane/utils"
	"gorm.io/gorm"
)

// AdminAuthRepositoryImpl implements AdminAuthRepository interface
type AdminAuthRepositoryImpl struct {
	*BaseRepository[models.AdminAuth, models.AdminAuthFilter]
}

// NewAdminAuthRepository creates a new admin auth repository
func NewAdminAuthRepository(db *gorm.DB) AdminAuthRepository {
	return &AdminAuthRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AdminAuth, models.AdminAuthFilter](db, applyAdminAuthFilter),
	}
}

// ByUUID retrieves an admin by UUID
func (r *AdminAuthRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.AdminAuth, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	return r.first(ctx, models.AdminAuthFilter{UUID: &parsedUUID})
}

// ByUsername retrieves an admin by username
func (r *AdminAuthRepositoryImpl) ByUsername(ctx context.Context, username string) (*models.AdminAuth, error) {
	return r.first(ctx, models.AdminAuthFilter{Username: &username})
}

// ByEmail retrieves an admin by email
func (r *AdminAuthRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.AdminAuth, error) {
	email = utils.NormalizeEmail(email)
	return r.first(ctx, models.AdminAuthFilter{Email: &email})
}

// ByActivationToken retrieves the invited admin owning token
func (r *AdminAuthRepositoryImpl) ByActivationToken(ctx context.Context, token string) (*models.AdminAuth, error) {
	if token == "" {
		return nil, nil
	}
	return r.first(ctx, models.AdminAuthFilter{ActivationToken: &token})
}

// ByResetToken retrieves the admin owning a password reset token
func (r *AdminAuthRepositoryImpl) ByResetToken(ctx context.Context, token string) (*models.AdminAuth, error) {
	if token == "" {
		return nil, nil
	}
	return r.first(ctx, models.AdminAuthFilter{ResetToken: &token})
}

// PurgeExpiredResetTokens clears reset tokens whose expiry is before now
func (r *AdminAuthRepositoryImpl) PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	var affected int64
	err := r.write(ctx, func(db *gorm.DB) error {
		res := db.Model(&models.AdminAuth{}).
			Where("reset_token IS NOT NULL AND reset_token_expiry < ?", now).
			Updates(map[string]any{"reset_token": nil, "reset_token_expiry": nil})
		if res.Error != nil {
			return fmt.Errorf("failed to purge expired reset tokens: %w", res.Error)
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

// ExpireStaleActivationTokens clears activation tokens of invites created before createdBefore
// that never completed setup
func (r *AdminAuthRepositoryImpl) ExpireStaleActivationTokens(ctx context.Context, createdBefore time.Time) (int64, error) {
	var affected int64
	err := r.write(ctx, func(db *gorm.DB) error {
		res := db.Model(&models.AdminAuth{}).
			Where("activation_token IS NOT NULL AND setup_completed = ? AND created_at < ?", false, createdBefore).
			Update("activation_token", nil)
		if res.Error != nil {
			return fmt.Errorf("failed to expire activation tokens: %w", res.Error)
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

// applyAdminAuthFilter applies filter criteria to a GORM query
func applyAdminAuthFilter(query *gorm.DB, filter models.AdminAuthFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Username != nil {
		query = query.Where("username = ?", *filter.Username)
	}
	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.ActivationToken != nil {
		query = query.Where("activation_token = ?", *filter.ActivationToken)
	}
	if filter.ResetToken != nil {
		query = query.Where("reset_token = ?", *filter.ResetToken)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.SetupCompleted != nil {
		query = query.Where("setup_completed = ?", *filter.SetupCompleted)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

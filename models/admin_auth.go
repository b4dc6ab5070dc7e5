package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminAuth holds the credentials of an admin account.
// PasswordHash stays nil until the invited admin completes account setup through the activation token.
type AdminAuth struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UUID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_admin_auth_uuid" json:"uuid"`
	Username         string     `gorm:"size:255;not null;uniqueIndex:uk_admin_auth_username" json:"username"`
	Email            string     `gorm:"size:255;not null;uniqueIndex:uk_admin_auth_email" json:"email"`
	PasswordHash     *string    `gorm:"size:255" json:"-"`
	ActivationToken  *string    `gorm:"size:255;uniqueIndex:uk_admin_auth_activation_token" json:"-"`
	IsActive         *bool      `gorm:"not null;default:true" json:"is_active"`
	SetupCompleted   *bool      `gorm:"not null;default:false" json:"setup_completed"`
	ResetToken       *string    `gorm:"size:255;uniqueIndex:uk_admin_auth_reset_token" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (AdminAuth) TableName() string { return "admin_auth" }

// AdminAuthFilter represents filter criteria for admin queries
type AdminAuthFilter struct {
	ID              *uint
	UUID            *uuid.UUID
	Username        *string
	Email           *string
	ActivationToken *string
	ResetToken      *string
	IsActive        *bool
	SetupCompleted  *bool
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
}

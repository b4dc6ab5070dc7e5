package migrations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// adminAuthV3 lets invited admins exist before they pick a password
type adminAuthV3 struct {
	ID              uint      `gorm:"primaryKey"`
	UUID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_admin_auth_uuid"`
	Username        string    `gorm:"size:255;not null;uniqueIndex:uk_admin_auth_username"`
	Email           string    `gorm:"size:255;not null;uniqueIndex:uk_admin_auth_email"`
	PasswordHash    *string   `gorm:"size:255"`
	IsActive        bool      `gorm:"not null;default:true"`
	LastLoginAt     *time.Time
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
	ActivationToken *string   `gorm:"size:255;uniqueIndex:uk_admin_auth_activation_token"`
}

func (adminAuthV3) TableName() string { return "admin_auth" }

func makeAdminAuthPasswordNullable() *Migration {
	return &Migration{
		ID:          "20240110091100_make_admin_auth_password_nullable",
		Description: "allow admin_auth.password_hash to be NULL",
		Up: func(tx *gorm.DB) error {
			return alterColumn(tx, &adminAuthV3{}, "PasswordHash")
		},
		Down: func(tx *gorm.DB) error {
			return alterColumn(tx, &adminAuthV2{}, "PasswordHash")
		},
	}
}

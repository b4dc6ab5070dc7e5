package migrations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adminAuthV4 struct {
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
	SetupCompleted  bool      `gorm:"not null;default:false"`
}

func (adminAuthV4) TableName() string { return "admin_auth" }

func addAdminAuthSetupCompleted() *Migration {
	return &Migration{
		ID:          "20240110091200_add_admin_auth_setup_completed",
		Description: "add admin_auth.setup_completed defaulting to false",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().AddColumn(&adminAuthV4{}, "SetupCompleted")
		},
		Down: func(tx *gorm.DB) error {
			return dropColumn(tx, &adminAuthV3{}, "setup_completed")
		},
	}
}

package migrations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adminAuthV2 struct {
	ID              uint      `gorm:"primaryKey"`
	UUID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_admin_auth_uuid"`
	Username        string    `gorm:"size:255;not null;uniqueIndex:uk_admin_auth_username"`
	Email           string    `gorm:"size:255;not null;uniqueIndex:uk_admin_auth_email"`
	PasswordHash    string    `gorm:"size:255;not null"`
	IsActive        bool      `gorm:"not null;default:true"`
	LastLoginAt     *time.Time
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
	ActivationToken *string   `gorm:"size:255;uniqueIndex:uk_admin_auth_activation_token"`
}

func (adminAuthV2) TableName() string { return "admin_auth" }

func addAdminAuthActivationToken() *Migration {
	return &Migration{
		ID:          "20240110091000_add_admin_auth_activation_token",
		Description: "add nullable unique admin_auth.activation_token",
		Up: func(tx *gorm.DB) error {
			if err := tx.Migrator().AddColumn(&adminAuthV2{}, "ActivationToken"); err != nil {
				return err
			}
			return tx.Migrator().CreateIndex(&adminAuthV2{}, "uk_admin_auth_activation_token")
		},
		Down: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropIndex(&adminAuthV2{}, "uk_admin_auth_activation_token"); err != nil {
				return err
			}
			return dropColumn(tx, &adminAuthV1{}, "activation_token")
		},
	}
}

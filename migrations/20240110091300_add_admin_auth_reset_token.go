package migrations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adminAuthV5 struct {
	ID               uint      `gorm:"primaryKey"`
	UUID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_admin_auth_uuid"`
	Username         string    `gorm:"size:255;not null;uniqueIndex:uk_admin_auth_username"`
	Email            string    `gorm:"size:255;not null;uniqueIndex:uk_admin_auth_email"`
	PasswordHash     *string   `gorm:"size:255"`
	IsActive         bool      `gorm:"not null;default:true"`
	LastLoginAt      *time.Time
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
	ActivationToken  *string   `gorm:"size:255;uniqueIndex:uk_admin_auth_activation_token"`
	SetupCompleted   bool      `gorm:"not null;default:false"`
	ResetToken       *string   `gorm:"size:255;uniqueIndex:uk_admin_auth_reset_token"`
	ResetTokenExpiry *time.Time
}

func (adminAuthV5) TableName() string { return "admin_auth" }

func addAdminAuthResetToken() *Migration {
	return &Migration{
		ID:          "20240110091300_add_admin_auth_reset_token",
		Description: "add admin_auth.reset_token and reset_token_expiry",
		Up: func(tx *gorm.DB) error {
			if err := tx.Migrator().AddColumn(&adminAuthV5{}, "ResetToken"); err != nil {
				return err
			}
			if err := tx.Migrator().CreateIndex(&adminAuthV5{}, "uk_admin_auth_reset_token"); err != nil {
				return err
			}
			return tx.Migrator().AddColumn(&adminAuthV5{}, "ResetTokenExpiry")
		},
		Down: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropIndex(&adminAuthV5{}, "uk_admin_auth_reset_token"); err != nil {
				return err
			}
			if err := dropColumn(tx, &adminAuthV4{}, "reset_token_expiry"); err != nil {
				return err
			}
			return dropColumn(tx, &adminAuthV4{}, "reset_token")
		},
	}
}

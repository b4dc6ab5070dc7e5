package migrations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adminAuthV1 struct {
	ID           uint      `gorm:"primaryKey"`
	UUID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_admin_auth_uuid"`
	Username     string    `gorm:"size:255;not null;uniqueIndex:uk_admin_auth_username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uk_admin_auth_email"`
	PasswordHash string    `gorm:"size:255;not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (adminAuthV1) TableName() string { return "admin_auth" }

func createAdminAuth() *Migration {
	return &Migration{
		ID:          "20240110090900_create_admin_auth",
		Description: "create admin_auth",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&adminAuthV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&adminAuthV1{})
		},
	}
}

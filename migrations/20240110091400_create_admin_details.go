package migrations

import (
	"time"

	"gorm.io/gorm"
)

type adminDetailsV1 struct {
	ID          uint         `gorm:"primaryKey"`
	AdminAuthID uint         `gorm:"not null;uniqueIndex:uk_admin_details_admin_auth_id"`
	Username    *string      `gorm:"size:255;uniqueIndex:uk_admin_details_username"`
	CompanyName *string      `gorm:"size:255"`
	CreatedAt   time.Time    `gorm:"not null"`
	UpdatedAt   time.Time    `gorm:"not null"`
	AdminAuth   *adminAuthV5 `gorm:"foreignKey:AdminAuthID;constraint:OnDelete:CASCADE"`
}

func (adminDetailsV1) TableName() string { return "admin_details" }

func createAdminDetails() *Migration {
	return &Migration{
		ID:          "20240110091400_create_admin_details",
		Description: "create admin_details owned by admin_auth",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&adminDetailsV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&adminDetailsV1{})
		},
	}
}

package migrations

import (
	"time"

	"gorm.io/gorm"
)

type roleV1 struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uk_roles_name"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (roleV1) TableName() string { return "roles" }

func createRoles() *Migration {
	return &Migration{
		ID:          "20240110091500_create_roles",
		Description: "create roles",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&roleV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&roleV1{})
		},
	}
}

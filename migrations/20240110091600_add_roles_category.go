package migrations

import (
	"time"

	"gorm.io/gorm"
)

type roleV2 struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uk_roles_name"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Category  *string   `gorm:"size:64"`
}

func (roleV2) TableName() string { return "roles" }

func addRolesCategory() *Migration {
	return &Migration{
		ID:          "20240110091600_add_roles_category",
		Description: "add nullable roles.category",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().AddColumn(&roleV2{}, "Category")
		},
		Down: func(tx *gorm.DB) error {
			return dropColumn(tx, &roleV1{}, "category")
		},
	}
}

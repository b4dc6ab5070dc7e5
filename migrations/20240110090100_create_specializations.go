package migrations

import (
	"time"

	"gorm.io/gorm"
)

type specializationV1 struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (specializationV1) TableName() string { return "specializations" }

func createSpecializations() *Migration {
	return &Migration{
		ID:          "20240110090100_create_specializations",
		Description: "create specializations",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&specializationV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&specializationV1{})
		},
	}
}

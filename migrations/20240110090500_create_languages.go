package migrations

import (
	"time"

	"gorm.io/gorm"
)

type languageV1 struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	Code      string    `gorm:"size:10;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (languageV1) TableName() string { return "languages" }

func createLanguages() *Migration {
	return &Migration{
		ID:          "20240110090500_create_languages",
		Description: "create languages",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&languageV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&languageV1{})
		},
	}
}

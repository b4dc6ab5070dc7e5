package migrations

import (
	"time"

	"gorm.io/gorm"
)

type languageV2 struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uk_languages_name"`
	Code      string    `gorm:"size:10;not null;uniqueIndex:uk_languages_code"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (languageV2) TableName() string { return "languages" }

func addLanguagesUniqueConstraints() *Migration {
	return &Migration{
		ID:          "20240110090600_add_languages_unique_constraints",
		Description: "make languages.name and languages.code unique",
		Up: func(tx *gorm.DB) error {
			if err := tx.Migrator().CreateIndex(&languageV2{}, "uk_languages_name"); err != nil {
				return err
			}
			return tx.Migrator().CreateIndex(&languageV2{}, "uk_languages_code")
		},
		Down: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropIndex(&languageV2{}, "uk_languages_code"); err != nil {
				return err
			}
			return tx.Migrator().DropIndex(&languageV2{}, "uk_languages_name")
		},
	}
}

package migrations

import (
	"time"

	"gorm.io/gorm"
)

type specializationV2 struct {
	ID         uint      `gorm:"primaryKey"`
	DomainName string    `gorm:"column:domain_name;size:255;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (specializationV2) TableName() string { return "specializations" }

func renameSpecializationsName() *Migration {
	return &Migration{
		ID:          "20240110090200_rename_specializations_name",
		Description: "rename specializations.name to domain_name",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().RenameColumn(&specializationV2{}, "name", "DomainName")
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().RenameColumn(&specializationV1{}, "domain_name", "Name")
		},
	}
}

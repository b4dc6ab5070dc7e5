package migrations

import (
	"time"

	"gorm.io/gorm"
)

type specializationV3 struct {
	ID         uint      `gorm:"primaryKey"`
	DomainName string    `gorm:"column:domain_name;size:255;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
	ActiveFlag bool      `gorm:"column:active_flag;not null;default:true"`
}

func (specializationV3) TableName() string { return "specializations" }

func addSpecializationsActiveFlag() *Migration {
	return &Migration{
		ID:          "20240110090300_add_specializations_active_flag",
		Description: "add specializations.active_flag defaulting to true",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().AddColumn(&specializationV3{}, "ActiveFlag")
		},
		Down: func(tx *gorm.DB) error {
			return dropColumn(tx, &specializationV2{}, "active_flag")
		},
	}
}

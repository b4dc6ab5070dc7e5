package migrations

import (
	"time"

	"gorm.io/gorm"
)

type unitV1 struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uk_units_name"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (unitV1) TableName() string { return "units" }

func createUnits() *Migration {
	return &Migration{
		ID:          "20240110090800_create_units",
		Description: "create units with a unique name",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&unitV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&unitV1{})
		},
	}
}

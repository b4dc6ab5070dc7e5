package migrations

import (
	"time"

	"gorm.io/gorm"
)

type serviceV1 struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uk_services_name"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (serviceV1) TableName() string { return "services" }

func createServices() *Migration {
	return &Migration{
		ID:          "20240110090000_create_services",
		Description: "create services with a unique name",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&serviceV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&serviceV1{})
		},
	}
}

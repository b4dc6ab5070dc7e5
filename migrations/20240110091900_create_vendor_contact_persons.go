package migrations

import (
	"time"

	"gorm.io/gorm"
)

type vendorContactPersonV1 struct {
	ID         uint      `gorm:"primaryKey"`
	VendorName string    `gorm:"size:255;not null"`
	FullName   string    `gorm:"size:255;not null"`
	Email      string    `gorm:"size:255;not null"`
	Phone      *string   `gorm:"size:32"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (vendorContactPersonV1) TableName() string { return "vendor_contact_persons" }

func createVendorContactPersons() *Migration {
	return &Migration{
		ID:          "20240110091900_create_vendor_contact_persons",
		Description: "create vendor_contact_persons",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&vendorContactPersonV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&vendorContactPersonV1{})
		},
	}
}

package migrations

import (
	"time"

	"gorm.io/gorm"
)

type vendorContactPersonV2 struct {
	ID         uint      `gorm:"primaryKey"`
	VendorName string    `gorm:"size:255;not null"`
	FullName   string    `gorm:"size:255;not null"`
	Email      string    `gorm:"size:255;not null;uniqueIndex:uk_vendor_contact_persons_email"`
	Phone      *string   `gorm:"size:32"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (vendorContactPersonV2) TableName() string { return "vendor_contact_persons" }

func addVendorContactPersonsUniqueEmail() *Migration {
	return &Migration{
		ID:          "20240110092000_add_vendor_contact_persons_unique_email",
		Description: "make vendor_contact_persons.email unique",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateIndex(&vendorContactPersonV2{}, "uk_vendor_contact_persons_email")
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropIndex(&vendorContactPersonV2{}, "uk_vendor_contact_persons_email")
		},
	}
}

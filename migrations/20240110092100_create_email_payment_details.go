package migrations

import (
	"time"

	"gorm.io/gorm"
)

type emailPaymentDetailV1 struct {
	ID         uint      `gorm:"primaryKey"`
	Email      string    `gorm:"size:255;not null"`
	HolderName string    `gorm:"size:255;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (emailPaymentDetailV1) TableName() string { return "email_payment_details" }

func createEmailPaymentDetails() *Migration {
	return &Migration{
		ID:          "20240110092100_create_email_payment_details",
		Description: "create email_payment_details",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&emailPaymentDetailV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&emailPaymentDetailV1{})
		},
	}
}

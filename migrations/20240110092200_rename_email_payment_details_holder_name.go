package migrations

import (
	"time"

	"gorm.io/gorm"
)

type emailPaymentDetailV2 struct {
	ID                uint      `gorm:"primaryKey"`
	Email             string    `gorm:"size:255;not null"`
	AccountHolderName string    `gorm:"size:255;not null"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

func (emailPaymentDetailV2) TableName() string { return "email_payment_details" }

func renameEmailPaymentDetailsHolderName() *Migration {
	return &Migration{
		ID:          "20240110092200_rename_email_payment_details_holder_name",
		Description: "rename email_payment_details.holder_name to account_holder_name",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().RenameColumn(&emailPaymentDetailV2{}, "holder_name", "AccountHolderName")
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().RenameColumn(&emailPaymentDetailV1{}, "account_holder_name", "HolderName")
		},
	}
}

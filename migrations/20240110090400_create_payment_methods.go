package migrations

import (
	"time"

	"gorm.io/gorm"
)

type paymentMethodV1 struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uk_payment_methods_name"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (paymentMethodV1) TableName() string { return "payment_methods" }

func createPaymentMethods() *Migration {
	return &Migration{
		ID:          "20240110090400_create_payment_methods",
		Description: "create payment_methods with a unique name",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&paymentMethodV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&paymentMethodV1{})
		},
	}
}

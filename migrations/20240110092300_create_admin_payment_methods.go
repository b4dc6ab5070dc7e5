package migrations

import (
	"time"

	"gorm.io/gorm"
)

type adminPaymentMethodV1 struct {
	ID                   uint `gorm:"primaryKey"`
	AdminAuthID          uint `gorm:"not null;index:idx_admin_payment_methods_admin_auth_id"`
	PaymentMethodID      uint `gorm:"not null"`
	EmailPaymentDetailID *uint
	CreatedAt            time.Time             `gorm:"not null"`
	UpdatedAt            time.Time             `gorm:"not null"`
	AdminAuth            *adminAuthV5          `gorm:"foreignKey:AdminAuthID;constraint:OnDelete:CASCADE"`
	PaymentMethod        *paymentMethodV1      `gorm:"foreignKey:PaymentMethodID;constraint:OnDelete:RESTRICT"`
	EmailPaymentDetail   *emailPaymentDetailV2 `gorm:"foreignKey:EmailPaymentDetailID;constraint:OnDelete:SET NULL"`
}

func (adminPaymentMethodV1) TableName() string { return "admin_payment_methods" }

func createAdminPaymentMethods() *Migration {
	return &Migration{
		ID:          "20240110092300_create_admin_payment_methods",
		Description: "create admin_payment_methods linking admins to payment methods",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&adminPaymentMethodV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&adminPaymentMethodV1{})
		},
	}
}

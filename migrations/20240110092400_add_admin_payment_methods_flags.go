package migrations

import (
	"time"

	"gorm.io/gorm"
)

type adminPaymentMethodV2 struct {
	ID                   uint `gorm:"primaryKey"`
	AdminAuthID          uint `gorm:"not null;index:idx_admin_payment_methods_admin_auth_id"`
	PaymentMethodID      uint `gorm:"not null"`
	EmailPaymentDetailID *uint
	CreatedAt            time.Time             `gorm:"not null"`
	UpdatedAt            time.Time             `gorm:"not null"`
	IsDefault            bool                  `gorm:"not null;default:false"`
	ActiveFlag           bool                  `gorm:"not null;default:true"`
	AdminAuth            *adminAuthV5          `gorm:"foreignKey:AdminAuthID;constraint:OnDelete:CASCADE"`
	PaymentMethod        *paymentMethodV1      `gorm:"foreignKey:PaymentMethodID;constraint:OnDelete:RESTRICT"`
	EmailPaymentDetail   *emailPaymentDetailV2 `gorm:"foreignKey:EmailPaymentDetailID;constraint:OnDelete:SET NULL"`
}

func (adminPaymentMethodV2) TableName() string { return "admin_payment_methods" }

const singleDefaultIndex = "uk_admin_payment_methods_single_default"

func addAdminPaymentMethodsFlags() *Migration {
	return &Migration{
		ID:          "20240110092400_add_admin_payment_methods_flags",
		Description: "add admin_payment_methods.is_default and active_flag with at most one default per admin",
		Up: func(tx *gorm.DB) error {
			if err := tx.Migrator().AddColumn(&adminPaymentMethodV2{}, "IsDefault"); err != nil {
				return err
			}
			if err := tx.Migrator().AddColumn(&adminPaymentMethodV2{}, "ActiveFlag"); err != nil {
				return err
			}
			// partial index; both Postgres and SQLite accept the bare boolean predicate
			return tx.Exec("CREATE UNIQUE INDEX " + singleDefaultIndex + " ON admin_payment_methods (admin_auth_id) WHERE is_default").Error
		},
		Down: func(tx *gorm.DB) error {
			if err := tx.Exec("DROP INDEX IF EXISTS " + singleDefaultIndex).Error; err != nil {
				return err
			}
			if err := dropColumn(tx, &adminPaymentMethodV2{}, "active_flag"); err != nil {
				return err
			}
			return dropColumn(tx, &adminPaymentMethodV1{}, "is_default")
		},
	}
}

package migrations

import (
	"time"

	"gorm.io/gorm"
)

type currencyV1 struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:3;not null;uniqueIndex:uk_currencies_code"`
	Symbol    string    `gorm:"size:8;not null"`
	Name      string    `gorm:"size:100;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (currencyV1) TableName() string { return "currencies" }

func createCurrencies() *Migration {
	return &Migration{
		ID:          "20240110090700_create_currencies",
		Description: "create currencies with a unique code",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&currencyV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&currencyV1{})
		},
	}
}

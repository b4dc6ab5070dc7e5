package migrations

import (
	"time"

	"gorm.io/gorm"
)

type clientContactPersonV1 struct {
	ID         uint      `gorm:"primaryKey"`
	ClientName string    `gorm:"size:255;not null"`
	FullName   string    `gorm:"size:255;not null"`
	Email      string    `gorm:"size:255;not null"`
	Phone      *string   `gorm:"size:32"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (clientContactPersonV1) TableName() string { return "client_contact_persons" }

func createClientContactPersons() *Migration {
	return &Migration{
		ID:          "20240110091700_create_client_contact_persons",
		Description: "create client_contact_persons",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&clientContactPersonV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&clientContactPersonV1{})
		},
	}
}

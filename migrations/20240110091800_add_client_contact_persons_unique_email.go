package migrations

import (
	"time"

	"gorm.io/gorm"
)

type clientContactPersonV2 struct {
	ID         uint      `gorm:"primaryKey"`
	ClientName string    `gorm:"size:255;not null"`
	FullName   string    `gorm:"size:255;not null"`
	Email      string    `gorm:"size:255;not null;uniqueIndex:uk_client_contact_persons_email"`
	Phone      *string   `gorm:"size:32"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (clientContactPersonV2) TableName() string { return "client_contact_persons" }

func addClientContactPersonsUniqueEmail() *Migration {
	return &Migration{
		ID:          "20240110091800_add_client_contact_persons_unique_email",
		Description: "make client_contact_persons.email unique",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateIndex(&clientContactPersonV2{}, "uk_client_contact_persons_email")
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropIndex(&clientContactPersonV2{}, "uk_client_contact_persons_email")
		},
	}
}

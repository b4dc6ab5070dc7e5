package models

import "time"

// Currency holds an ISO 4217 code with its display symbol
type Currency struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:3;not null;uniqueIndex:uk_currencies_code" json:"code"`
	Symbol    string    `gorm:"size:8;not null" json:"symbol"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Currency) TableName() string { return "currencies" }

// CurrencyFilter represents filter criteria for currency queries
type CurrencyFilter struct {
	ID       *uint
	Code     *string
	NameLike *string
}

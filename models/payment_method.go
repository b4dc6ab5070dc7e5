package models

import "time"

// PaymentMethod is a payout channel offered to admins (bank transfer, PayPal, ...)
type PaymentMethod struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uk_payment_methods_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PaymentMethod) TableName() string { return "payment_methods" }

// PaymentMethodFilter represents filter criteria for payment method queries
type PaymentMethodFilter struct {
	ID       *uint
	Name     *string
	NameLike *string
}

package models

import "time"

// EmailPaymentDetail is an email-addressed payout account (PayPal style)
type EmailPaymentDetail struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Email             string    `gorm:"size:255;not null" json:"email"`
	AccountHolderName string    `gorm:"column:account_holder_name;size:255;not null" json:"account_holder_name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (EmailPaymentDetail) TableName() string { return "email_payment_details" }

// EmailPaymentDetailFilter represents filter criteria for email payment detail queries
type EmailPaymentDetailFilter struct {
	ID     *uint
	Email  *string
	Search *string // matches email or account holder name
}

package models

import "time"

// AdminPaymentMethod links an admin to a payment method they accept payouts through.
// At most one active row per admin carries IsDefault.
type AdminPaymentMethod struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	AdminAuthID          uint      `gorm:"not null;index:idx_admin_payment_methods_admin_auth_id" json:"admin_auth_id"`
	PaymentMethodID      uint      `gorm:"not null" json:"payment_method_id"`
	EmailPaymentDetailID *uint     `json:"email_payment_detail_id,omitempty"`
	IsDefault            *bool     `gorm:"not null;default:false" json:"is_default"`
	ActiveFlag           *bool     `gorm:"not null;default:true" json:"active_flag"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	PaymentMethod      *PaymentMethod      `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
	EmailPaymentDetail *EmailPaymentDetail `gorm:"foreignKey:EmailPaymentDetailID" json:"email_payment_detail,omitempty"`
}

func (AdminPaymentMethod) TableName() string { return "admin_payment_methods" }

// AdminPaymentMethodFilter represents filter criteria for admin payment method queries
type AdminPaymentMethodFilter struct {
	ID              *uint
	AdminAuthID     *uint
	PaymentMethodID *uint
	IsDefault       *bool
	ActiveFlag      *bool
}

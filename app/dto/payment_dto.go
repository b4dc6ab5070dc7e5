package dto

type EmailPaymentDetailRequest struct {
	Email             string `json:"email" validate:"required,email,max=255"`
	AccountHolderName string `json:"account_holder_name" validate:"required,notblank,max=255"`
}

type EmailPaymentDetailDTO struct {
	ID                uint   `json:"id" example:"1"`
	Email             string `json:"email" example:"payouts@example.com"`
	AccountHolderName string `json:"account_holder_name" example:"Jane Roe"`
	CreatedAt         string `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt         string `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

type AdminPaymentMethodRequest struct {
	PaymentMethodID      uint  `json:"payment_method_id" validate:"required,gt=0"`
	EmailPaymentDetailID *uint `json:"email_payment_detail_id,omitempty" validate:"omitempty,gt=0"`
	IsDefault            *bool `json:"is_default,omitempty"`
	ActiveFlag           *bool `json:"active_flag,omitempty"`
}

// UpdateAdminPaymentMethodRequest changes only the flags that are present
type UpdateAdminPaymentMethodRequest struct {
	EmailPaymentDetailID *uint `json:"email_payment_detail_id,omitempty" validate:"omitempty,gt=0"`
	IsDefault            *bool `json:"is_default,omitempty"`
	ActiveFlag           *bool `json:"active_flag,omitempty"`
}

type AdminPaymentMethodDTO struct {
	ID                 uint                   `json:"id" example:"1"`
	PaymentMethod      *PaymentMethodDTO      `json:"payment_method,omitempty"`
	EmailPaymentDetail *EmailPaymentDetailDTO `json:"email_payment_detail,omitempty"`
	IsDefault          bool                   `json:"is_default" example:"true"`
	ActiveFlag         bool                   `json:"active_flag" example:"true"`
	CreatedAt          string                 `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt          string                 `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

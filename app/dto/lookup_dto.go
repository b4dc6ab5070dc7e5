package dto

type ServiceRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

type ServiceDTO struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"Translation"`
	CreatedAt string `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

type SpecializationRequest struct {
	DomainName string `json:"domain_name" validate:"required,notblank,max=255"`
	ActiveFlag *bool  `json:"active_flag,omitempty"`
}

// SetActiveRequest toggles a specialization; the flag is mandatory so false is not mistaken for absent
type SetActiveRequest struct {
	ActiveFlag *bool `json:"active_flag" validate:"required"`
}

type SpecializationDTO struct {
	ID         uint   `json:"id" example:"1"`
	DomainName string `json:"domain_name" example:"Legal"`
	ActiveFlag bool   `json:"active_flag" example:"true"`
	CreatedAt  string `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt  string `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

type PaymentMethodRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

type PaymentMethodDTO struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"PayPal"`
	CreatedAt string `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

type UnitRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

type UnitDTO struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"Word"`
	CreatedAt string `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

type LanguageRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
	Code string `json:"code" validate:"required,min=2,max=10"`
}

type LanguageDTO struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"German"`
	Code      string `json:"code" example:"de"`
	CreatedAt string `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

type CurrencyRequest struct {
	Code   string `json:"code" validate:"required,len=3,uppercase"`
	Symbol string `json:"symbol" validate:"required,max=8"`
	Name   string `json:"name" validate:"required,notblank,max=100"`
}

type CurrencyDTO struct {
	ID        uint   `json:"id" example:"1"`
	Code      string `json:"code" example:"EUR"`
	Symbol    string `json:"symbol" example:"€"`
	Name      string `json:"name" example:"Euro"`
	CreatedAt string `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

type RoleRequest struct {
	Name     string  `json:"name" validate:"required,notblank,max=100"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=64"`
}

type RoleDTO struct {
	ID        uint    `json:"id" example:"1"`
	Name      string  `json:"name" example:"Reviewer"`
	Category  *string `json:"category,omitempty" example:"quality"`
	CreatedAt string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt string  `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

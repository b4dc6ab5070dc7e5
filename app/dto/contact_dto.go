package dto

type ClientContactPersonRequest struct {
	ClientName string  `json:"client_name" validate:"required,notblank,max=255"`
	FullName   string  `json:"full_name" validate:"required,notblank,max=255"`
	Email      string  `json:"email" validate:"required,email,max=255"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,e164"`
}

type VendorContactPersonRequest struct {
	VendorName string  `json:"vendor_name" validate:"required,notblank,max=255"`
	FullName   string  `json:"full_name" validate:"required,notblank,max=255"`
	Email      string  `json:"email" validate:"required,email,max=255"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// ContactPersonDTO serves both client and vendor contacts; Company holds the client or vendor name
type ContactPersonDTO struct {
	ID        uint    `json:"id" example:"1"`
	Company   string  `json:"company" example:"Acme"`
	FullName  string  `json:"full_name" example:"Jane Roe"`
	Email     string  `json:"email" example:"jane@acme.example"`
	Phone     *string `json:"phone,omitempty" example:"+4915112345678"`
	CreatedAt string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt string  `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

package models

import "time"

// AdminDetails is the profile row attached one-to-one to an AdminAuth
type AdminDetails struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AdminAuthID uint      `gorm:"not null;uniqueIndex:uk_admin_details_admin_auth_id" json:"admin_auth_id"`
	Username    *string   `gorm:"size:255;uniqueIndex:uk_admin_details_username" json:"username,omitempty"`
	CompanyName *string   `gorm:"size:255" json:"company_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (AdminDetails) TableName() string { return "admin_details" }

// AdminDetailsFilter represents filter criteria for admin details queries
type AdminDetailsFilter struct {
	ID          *uint
	AdminAuthID *uint
	Username    *string
}

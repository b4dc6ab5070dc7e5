package models

import "time"

// ClientContactPerson is a person to reach at a client company; email is unique in the table
type ClientContactPerson struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ClientName string    `gorm:"size:255;not null" json:"client_name"`
	FullName   string    `gorm:"size:255;not null" json:"full_name"`
	Email      string    `gorm:"size:255;not null;uniqueIndex:uk_client_contact_persons_email" json:"email"`
	Phone      *string   `gorm:"size:32" json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ClientContactPerson) TableName() string { return "client_contact_persons" }

// VendorContactPerson is a person to reach at a vendor; email is unique in the table
type VendorContactPerson struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	VendorName string    `gorm:"size:255;not null" json:"vendor_name"`
	FullName   string    `gorm:"size:255;not null" json:"full_name"`
	Email      string    `gorm:"size:255;not null;uniqueIndex:uk_vendor_contact_persons_email" json:"email"`
	Phone      *string   `gorm:"size:32" json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (VendorContactPerson) TableName() string { return "vendor_contact_persons" }

// ContactPersonFilter is shared by client and vendor contact queries.
// Company matches client_name or vendor_name depending on the table.
type ContactPersonFilter struct {
	ID       *uint
	Email    *string
	Company  *string
	NameLike *string
}

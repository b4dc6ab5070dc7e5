package models

import "time"

// Specialization is a subject domain a vendor can be specialized in.
// The column was called name until the domain_name rename migration.
type Specialization struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DomainName string    `gorm:"column:domain_name;size:255;not null" json:"domain_name"`
	ActiveFlag *bool     `gorm:"column:active_flag;not null;default:true" json:"active_flag"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Specialization) TableName() string { return "specializations" }

// SpecializationFilter represents filter criteria for specialization queries
type SpecializationFilter struct {
	ID             *uint
	DomainName     *string
	DomainNameLike *string
	ActiveFlag     *bool
}

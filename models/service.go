// Package models contains the GORM declarations of every table managed by the admin backend
package models

import "time"

// Service is an offering the platform sells (translation, proofreading, ...)
type Service struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uk_services_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Service) TableName() string { return "services" }

// ServiceFilter represents filter criteria for service queries
type ServiceFilter struct {
	ID            *uint
	Name          *string
	NameLike      *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

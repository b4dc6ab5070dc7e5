package models

import "time"

// Role is a named role; Category was added after the table was first created
type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uk_roles_name" json:"name"`
	Category  *string   `gorm:"size:64" json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Role) TableName() string { return "roles" }

// RoleFilter represents filter criteria for role queries
type RoleFilter struct {
	ID       *uint
	Name     *string
	Category *string
	NameLike *string
}

package models

import "time"

// Unit is a billing unit (word, page, hour, ...)
type Unit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uk_units_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Unit) TableName() string { return "units" }

// UnitFilter represents filter criteria for unit queries
type UnitFilter struct {
	ID       *uint
	Name     *string
	NameLike *string
}

package models

import "time"

// Language is a language pair endpoint; both name and code are unique
type Language struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uk_languages_name" json:"name"`
	Code      string    `gorm:"size:10;not null;uniqueIndex:uk_languages_code" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Language) TableName() string { return "languages" }

// LanguageFilter represents filter criteria for language queries
type LanguageFilter struct {
	ID       *uint
	Name     *string
	Code     *string
	NameLike *string
}

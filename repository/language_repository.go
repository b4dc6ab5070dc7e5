package repository

import (
	"context"

	"github.com/amirphl/Omoikane/models"
	"gorm.io/gorm"
)

// LanguageRepositoryImpl implements LanguageRepository interface
type LanguageRepositoryImpl struct {
	*BaseRepository[models.Language, models.LanguageFilter]
}

// NewLanguageRepository creates a new language repository
func NewLanguageRepository(db *gorm.DB) LanguageRepository {
	return &LanguageRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Language, models.LanguageFilter](db, applyLanguageFilter),
	}
}

// ByCode retrieves a language by its unique code
func (r *LanguageRepositoryImpl) ByCode(ctx context.Context, code string) (*models.Language, error) {
	return r.first(ctx, models.LanguageFilter{Code: &code})
}

func applyLanguageFilter(query *gorm.DB, filter models.LanguageFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Code != nil {
		query = query.Where("code = ?", *filter.Code)
	}
	if filter.NameLike != nil && *filter.NameLike != "" {
		query = whereLike(query, "name", *filter.NameLike)
	}
	return query
}

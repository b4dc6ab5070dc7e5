package repository

import (
	"context"

	"github.com/amirphl/Omoikane/models"
	"gorm.io/gorm"
)

// CurrencyRepositoryImpl implements CurrencyRepository interface
type CurrencyRepositoryImpl struct {
	*BaseRepository[models.Currency, models.CurrencyFilter]
}

// NewCurrencyRepository creates a new currency repository
func NewCurrencyRepository(db *gorm.DB) CurrencyRepository {
	return &CurrencyRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Currency, models.CurrencyFilter](db, applyCurrencyFilter),
	}
}

// ByCode retrieves a currency by its ISO code
func (r *CurrencyRepositoryImpl) ByCode(ctx context.Context, code string) (*models.Currency, error) {
	return r.first(ctx, models.CurrencyFilter{Code: &code})
}

func applyCurrencyFilter(query *gorm.DB, filter models.CurrencyFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Code != nil {
		query = query.Where("code = ?", *filter.Code)
	}
	if filter.NameLike != nil && *filter.NameLike != "" {
		query = whereLike(query, "name", *filter.NameLike)
	}
	return query
}

package repository

import (
	"context"

	"github.com/amirphl/Omoikane/models"
	"gorm.io/gorm"
)

// UnitRepositoryImpl implements UnitRepository interface
type UnitRepositoryImpl struct {
	*BaseRepository[models.Unit, models.UnitFilter]
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &UnitRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Unit, models.UnitFilter](db, applyUnitFilter),
	}
}

// ByName retrieves a unit by its unique name
func (r *UnitRepositoryImpl) ByName(ctx context.Context, name string) (*models.Unit, error) {
	return r.first(ctx, models.UnitFilter{Name: &name})
}

func applyUnitFilter(query *gorm.DB, filter models.UnitFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.NameLike != nil && *filter.NameLike != "" {
		query = whereLike(query, "name", *filter.NameLike)
	}
	return query
}

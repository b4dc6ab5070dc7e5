package repository

import (
	"context"

	"github.com/amirphl/Omoikane/models"
	"gorm.io/gorm"
)

// ServiceRepositoryImpl implements ServiceRepository interface
type ServiceRepositoryImpl struct {
	*BaseRepository[models.Service, models.ServiceFilter]
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &ServiceRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Service, models.ServiceFilter](db, applyServiceFilter),
	}
}

// ByName retrieves a service by its unique name
func (r *ServiceRepositoryImpl) ByName(ctx context.Context, name string) (*models.Service, error) {
	return r.first(ctx, models.ServiceFilter{Name: &name})
}

func applyServiceFilter(query *gorm.DB, filter models.ServiceFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.NameLike != nil && *filter.NameLike != "" {
		query = whereLike(query, "name", *filter.NameLike)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

package repository

import (
	"context"

	"github.com/amirphl/Omoikane/models"
	"gorm.io/gorm"
)

// SpecializationRepositoryImpl implements SpecializationRepository interface
type SpecializationRepositoryImpl struct {
	*BaseRepository[models.Specialization, models.SpecializationFilter]
}

// NewSpecializationRepository creates a new specialization repository
func NewSpecializationRepository(db *gorm.DB) SpecializationRepository {
	return &SpecializationRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Specialization, models.SpecializationFilter](db, applySpecializationFilter),
	}
}

// SetActive flips the active flag of a specialization
func (r *SpecializationRepositoryImpl) SetActive(ctx context.Context, id uint, active bool) error {
	return r.UpdateFields(ctx, id, map[string]any{"active_flag": active})
}

func applySpecializationFilter(query *gorm.DB, filter models.SpecializationFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.DomainName != nil {
		query = query.Where("domain_name = ?", *filter.DomainName)
	}
	if filter.DomainNameLike != nil && *filter.DomainNameLike != "" {
		query = whereLike(query, "domain_name", *filter.DomainNameLike)
	}
	if filter.ActiveFlag != nil {
		query = query.Where("active_flag = ?", *filter.ActiveFlag)
	}
	return query
}

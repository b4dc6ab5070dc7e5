package repository

import (
	"context"

	"github.com/amirphl/Omoikane/models"
	"gorm.io/gorm"
)

// AdminDetailsRepositoryImpl implements AdminDetailsRepository interface
type AdminDetailsRepositoryImpl struct {
	*BaseRepository[models.AdminDetails, models.AdminDetailsFilter]
}

// NewAdminDetailsRepository creates a new admin details repository
func NewAdminDetailsRepository(db *gorm.DB) AdminDetailsRepository {
	return &AdminDetailsRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AdminDetails, models.AdminDetailsFilter](db, applyAdminDetailsFilter),
	}
}

// ByAdminAuthID retrieves the profile of an admin
func (r *AdminDetailsRepositoryImpl) ByAdminAuthID(ctx context.Context, adminAuthID uint) (*models.AdminDetails, error) {
	return r.first(ctx, models.AdminDetailsFilter{AdminAuthID: &adminAuthID})
}

func applyAdminDetailsFilter(query *gorm.DB, filter models.AdminDetailsFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.AdminAuthID != nil {
		query = query.Where("admin_auth_id = ?", *filter.AdminAuthID)
	}
	if filter.Username != nil {
		query = query.Where("username = ?", *filter.Username)
	}
	return query
}

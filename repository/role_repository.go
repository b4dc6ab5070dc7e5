package repository

import (
	"context"

	"github.com/amirphl/Omoikane/models"
	"gorm.io/gorm"
)

// RoleRepositoryImpl implements RoleRepository interface
type RoleRepositoryImpl struct {
	*BaseRepository[models.Role, models.RoleFilter]
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &RoleRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Role, models.RoleFilter](db, applyRoleFilter),
	}
}

// ByName retrieves a role by its unique name
func (r *RoleRepositoryImpl) ByName(ctx context.Context, name string) (*models.Role, error) {
	return r.first(ctx, models.RoleFilter{Name: &name})
}

func applyRoleFilter(query *gorm.DB, filter models.RoleFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.NameLike != nil && *filter.NameLike != "" {
		query = whereLike(query, "name", *filter.NameLike)
	}
	return query
}

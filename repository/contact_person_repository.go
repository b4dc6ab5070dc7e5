package repository

import (
	"context"

	"github.com/amirphl/Omoikane/models"
	"github.com/amirphl/Omoikane/utils"
	"gorm.io/gorm"
)

// ClientContactPersonRepositoryImpl implements ClientContactPersonRepository interface
type ClientContactPersonRepositoryImpl struct {
	*BaseRepository[models.ClientContactPerson, models.ContactPersonFilter]
}

// NewClientContactPersonRepository creates a new client contact repository
func NewClientContactPersonRepository(db *gorm.DB) ClientContactPersonRepository {
	return &ClientContactPersonRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ClientContactPerson, models.ContactPersonFilter](db, contactPersonFilter("client_name")),
	}
}

// ByEmail retrieves a client contact by email
func (r *ClientContactPersonRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.ClientContactPerson, error) {
	email = utils.NormalizeEmail(email)
	return r.first(ctx, models.ContactPersonFilter{Email: &email})
}

// VendorContactPersonRepositoryImpl implements VendorContactPersonRepository interface
type VendorContactPersonRepositoryImpl struct {
	*BaseRepository[models.VendorContactPerson, models.ContactPersonFilter]
}

// NewVendorContactPersonRepository creates a new vendor contact repository
func NewVendorContactPersonRepository(db *gorm.DB) VendorContactPersonRepository {
	return &VendorContactPersonRepositoryImpl{
		BaseRepository: NewBaseRepository[models.VendorContactPerson, models.ContactPersonFilter](db, contactPersonFilter("vendor_name")),
	}
}

// ByEmail retrieves a vendor contact by email
func (r *VendorContactPersonRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.VendorContactPerson, error) {
	email = utils.NormalizeEmail(email)
	return r.first(ctx, models.ContactPersonFilter{Email: &email})
}

// contactPersonFilter builds the filter for a contact table whose company column is companyColumn
func contactPersonFilter(companyColumn string) filterFunc[models.ContactPersonFilter] {
	return func(query *gorm.DB, filter models.ContactPersonFilter) *gorm.DB {
		if filter.ID != nil {
			query = query.Where("id = ?", *filter.ID)
		}
		if filter.Email != nil {
			query = query.Where("email = ?", *filter.Email)
		}
		if filter.Company != nil {
			query = query.Where(companyColumn+" = ?", *filter.Company)
		}
		if filter.NameLike != nil && *filter.NameLike != "" {
			query = whereLike(query, "full_name", *filter.NameLike)
		}
		return query
	}
}

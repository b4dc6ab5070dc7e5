package repository

import (
	"context"

	"github.com/amirphl/Omoikane/models"
	"gorm.io/gorm"
)

// PaymentMethodRepositoryImpl implements PaymentMethodRepository interface
type PaymentMethodRepositoryImpl struct {
	*BaseRepository[models.PaymentMethod, models.PaymentMethodFilter]
}

// NewPaymentMethodRepository creates a new payment method repository
func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &PaymentMethodRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PaymentMethod, models.PaymentMethodFilter](db, applyPaymentMethodFilter),
	}
}

// ByName retrieves a payment method by its unique name
func (r *PaymentMethodRepositoryImpl) ByName(ctx context.Context, name string) (*models.PaymentMethod, error) {
	return r.first(ctx, models.PaymentMethodFilter{Name: &name})
}

func applyPaymentMethodFilter(query *gorm.DB, filter models.PaymentMethodFilter) *gorm.DB {
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

package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/Omoikane/models"
	"gorm.io/gorm"
)

// AdminPaymentMethodRepositoryImpl implements AdminPaymentMethodRepository interface
type AdminPaymentMethodRepositoryImpl struct {
	*BaseRepository[models.AdminPaymentMethod, models.AdminPaymentMethodFilter]
}

// NewAdminPaymentMethodRepository creates a new admin payment method repository.
// Reads preload the payment method and email payment detail.
func NewAdminPaymentMethodRepository(db *gorm.DB) AdminPaymentMethodRepository {
	return &AdminPaymentMethodRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AdminPaymentMethod, models.AdminPaymentMethodFilter](
			db, applyAdminPaymentMethodFilter, "PaymentMethod", "EmailPaymentDetail",
		),
	}
}

// ClearDefault unsets the default flag on every payment method of the admin except exceptID
func (r *AdminPaymentMethodRepositoryImpl) ClearDefault(ctx context.Context, adminAuthID uint, exceptID uint) error {
	return r.write(ctx, func(db *gorm.DB) error {
		err := db.Model(&models.AdminPaymentMethod{}).
			Where("admin_auth_id = ? AND id <> ? AND is_default = ?", adminAuthID, exceptID, true).
			Update("is_default", false).Error
		if err != nil {
			return fmt.Errorf("failed to clear default payment method: %w", err)
		}
		return nil
	})
}

func applyAdminPaymentMethodFilter(query *gorm.DB, filter models.AdminPaymentMethodFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.AdminAuthID != nil {
		query = query.Where("admin_auth_id = ?", *filter.AdminAuthID)
	}
	if filter.PaymentMethodID != nil {
		query = query.Where("payment_method_id = ?", *filter.PaymentMethodID)
	}
	if filter.IsDefault != nil {
		query = query.Where("is_default = ?", *filter.IsDefault)
	}
	if filter.ActiveFlag != nil {
		query = query.Where("active_flag = ?", *filter.ActiveFlag)
	}
	return query
}

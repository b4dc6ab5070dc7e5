package repository

import (
	"strings"

	"github.com/amirphl/Omoikane/models"
	"gorm.io/gorm"
)

// EmailPaymentDetailRepositoryImpl implements EmailPaymentDetailRepository interface
type EmailPaymentDetailRepositoryImpl struct {
	*BaseRepository[models.EmailPaymentDetail, models.EmailPaymentDetailFilter]
}

// NewEmailPaymentDetailRepository creates a new email payment detail repository
func NewEmailPaymentDetailRepository(db *gorm.DB) EmailPaymentDetailRepository {
	return &EmailPaymentDetailRepositoryImpl{
		BaseRepository: NewBaseRepository[models.EmailPaymentDetail, models.EmailPaymentDetailFilter](db, applyEmailPaymentDetailFilter),
	}
}

func applyEmailPaymentDetailFilter(query *gorm.DB, filter models.EmailPaymentDetailFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		pattern := likePattern(*filter.Search)
		query = query.Where(
			"(LOWER(email) LIKE ? ESCAPE '\\' OR LOWER(account_holder_name) LIKE ? ESCAPE '\\')",
			pattern, pattern,
		)
	}
	return query
}

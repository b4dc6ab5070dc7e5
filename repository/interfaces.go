// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/amirphl/Omoikane/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Update(ctx context.Context, entity *T) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// ServiceRepository defines operations for services
type ServiceRepository interface {
	Repository[models.Service, models.ServiceFilter]
	ByName(ctx context.Context, name string) (*models.Service, error)
}

// SpecializationRepository defines operations for specializations
type SpecializationRepository interface {
	Repository[models.Specialization, models.SpecializationFilter]
	SetActive(ctx context.Context, id uint, active bool) error
}

// PaymentMethodRepository defines operations for payment methods
type PaymentMethodRepository interface {
	Repository[models.PaymentMethod, models.PaymentMethodFilter]
	ByName(ctx context.Context, name string) (*models.PaymentMethod, error)
}

// LanguageRepository defines operations for languages
type LanguageRepository interface {
	Repository[models.Language, models.LanguageFilter]
	ByCode(ctx context.Context, code string) (*models.Language, error)
}

// CurrencyRepository defines operations for currencies
type CurrencyRepository interface {
	Repository[models.Currency, models.CurrencyFilter]
	ByCode(ctx context.Context, code string) (*models.Currency, error)
}

// UnitRepository defines operations for units
type UnitRepository interface {
	Repository[models.Unit, models.UnitFilter]
	ByName(ctx context.Context, name string) (*models.Unit, error)
}

// RoleRepository defines operations for roles
type RoleRepository interface {
	Repository[models.Role, models.RoleFilter]
	ByName(ctx context.Context, name string) (*models.Role, error)
}

// AdminAuthRepository defines operations for admin credentials
type AdminAuthRepository interface {
	Repository[models.AdminAuth, models.AdminAuthFilter]
	ByUUID(ctx context.Context, uuid string) (*models.AdminAuth, error)
	ByUsername(ctx context.Context, username string) (*models.AdminAuth, error)
	ByEmail(ctx context.Context, email string) (*models.AdminAuth, error)
	ByActivationToken(ctx context.Context, token string) (*models.AdminAuth, error)
	ByResetToken(ctx context.Context, token string) (*models.AdminAuth, error)
	PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
	ExpireStaleActivationTokens(ctx context.Context, createdBefore time.Time) (int64, error)
}

// AdminDetailsRepository defines operations for admin profiles
type AdminDetailsRepository interface {
	Repository[models.AdminDetails, models.AdminDetailsFilter]
	ByAdminAuthID(ctx context.Context, adminAuthID uint) (*models.AdminDetails, error)
}

// ClientContactPersonRepository defines operations for client contacts
type ClientContactPersonRepository interface {
	Repository[models.ClientContactPerson, models.ContactPersonFilter]
	ByEmail(ctx context.Context, email string) (*models.ClientContactPerson, error)
}

// VendorContactPersonRepository defines operations for vendor contacts
type VendorContactPersonRepository interface {
	Repository[models.VendorContactPerson, models.ContactPersonFilter]
	ByEmail(ctx context.Context, email string) (*models.VendorContactPerson, error)
}

// EmailPaymentDetailRepository defines operations for email payment details
type EmailPaymentDetailRepository interface {
	Repository[models.EmailPaymentDetail, models.EmailPaymentDetailFilter]
}

// AdminPaymentMethodRepository defines operations for an admin's payment methods
type AdminPaymentMethodRepository interface {
	Repository[models.AdminPaymentMethod, models.AdminPaymentMethodFilter]
	ClearDefault(ctx context.Context, adminAuthID uint, exceptID uint) error
}

// Package testing provides test utilities and database setup for testing the admin backend
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/amirphl/Omoikane/models"
	"github.com/amirphl/Omoikane/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestAdminPassword is the password of admins created by CreateTestAdmin
const TestAdminPassword = "TestPass123!"

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

func randomSuffix() string {
	return fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)
}

// CreateTestAdmin creates an active admin who completed setup with TestAdminPassword
func (tf *TestFixtures) CreateTestAdmin() (*models.AdminAuth, error) {
	// MinCost keeps the suite fast; production cost comes from config
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestAdminPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	suffix := randomSuffix()
	admin := &models.AdminAuth{
		UUID:           uuid.New(),
		Username:       "admin_" + suffix,
		Email:          fmt.Sprintf("admin.%s@example.com", suffix),
		PasswordHash:   utils.ToPtr(string(hashedPassword)),
		IsActive:       utils.ToPtr(true),
		SetupCompleted: utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create test admin: %w", err)
	}
	return admin, nil
}

// CreateInvitedAdmin creates an admin that still has to activate the account with the returned token
func (tf *TestFixtures) CreateInvitedAdmin() (*models.AdminAuth, string, error) {
	token, err := utils.GenerateSecureToken(utils.SecureTokenBytes)
	if err != nil {
		return nil, "", err
	}

	suffix := randomSuffix()
	admin := &models.AdminAuth{
		UUID:            uuid.New(),
		Username:        "invited_" + suffix,
		Email:           fmt.Sprintf("invited.%s@example.com", suffix),
		ActivationToken: &token,
		IsActive:        utils.ToPtr(true),
		SetupCompleted:  utils.ToPtr(false),
	}

	if err := tf.DB.DB.Create(admin).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create invited admin: %w", err)
	}
	return admin, token, nil
}

// SetResetToken stores a reset token with the given expiry on admin
func (tf *TestFixtures) SetResetToken(admin *models.AdminAuth, token string, expiry time.Time) error {
	return tf.DB.DB.Model(admin).Updates(map[string]any{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}).Error
}

// CreateTestService creates a service with a unique name
func (tf *TestFixtures) CreateTestService() (*models.Service, error) {
	service := &models.Service{Name: "Service " + randomSuffix()}
	if err := tf.DB.DB.Create(service).Error; err != nil {
		return nil, fmt.Errorf("failed to create test service: %w", err)
	}
	return service, nil
}

// CreateTestPaymentMethod creates a payment method with a unique name
func (tf *TestFixtures) CreateTestPaymentMethod() (*models.PaymentMethod, error) {
	pm := &models.PaymentMethod{Name: "Method " + randomSuffix()}
	if err := tf.DB.DB.Create(pm).Error; err != nil {
		return nil, fmt.Errorf("failed to create test payment method: %w", err)
	}
	return pm, nil
}

// CreateTestEmailPaymentDetail creates an email payment detail
func (tf *TestFixtures) CreateTestEmailPaymentDetail() (*models.EmailPaymentDetail, error) {
	suffix := randomSuffix()
	detail := &models.EmailPaymentDetail{
		Email:             fmt.Sprintf("payouts.%s@example.com", suffix),
		AccountHolderName: "Holder " + suffix,
	}
	if err := tf.DB.DB.Create(detail).Error; err != nil {
		return nil, fmt.Errorf("failed to create test email payment detail: %w", err)
	}
	return detail, nil
}

// CreateTestAdminPaymentMethod attaches a fresh payment method to admin
func (tf *TestFixtures) CreateTestAdminPaymentMethod(admin *models.AdminAuth, isDefault bool) (*models.AdminPaymentMethod, error) {
	pm, err := tf.CreateTestPaymentMethod()
	if err != nil {
		return nil, err
	}

	apm := &models.AdminPaymentMethod{
		AdminAuthID:     admin.ID,
		PaymentMethodID: pm.ID,
		IsDefault:       utils.ToPtr(isDefault),
		ActiveFlag:      utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(apm).Error; err != nil {
		return nil, fmt.Errorf("failed to create test admin payment method: %w", err)
	}
	return apm, nil
}

package validation_test

import (
	"strings"
	"testing"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/app/validation"
	"github.com/amirphl/Omoikane/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(t *testing.T, err error) []string {
	t.Helper()
	verrs, ok := validation.AsErrors(err)
	require.True(t, ok, "expected validation errors, got %v", err)
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field)
	}
	return out
}

func TestLoginPasswordLength(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"seven characters rejected", "1234567", false},
		{"eight characters accepted", "12345678", true},
		{"128 characters accepted", strings.Repeat("a", 128), true},
		{"129 characters rejected", strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&dto.AdminLoginRequest{Username: "admin", Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, []string{"password"}, fields(t, err))
		})
	}
}

func TestLoginUsernameNotBlank(t *testing.T) {
	v := validation.New()

	err := v.Validate(&dto.AdminLoginRequest{Username: "   ", Password: "12345678"})
	verrs, ok := validation.AsErrors(err)
	require.True(t, ok)
	require.Len(t, verrs, 1)
	assert.Equal(t, "username", verrs[0].Field)
	assert.Equal(t, "username must not be blank", verrs[0].Message)
}

func TestRequestPasswordResetEmail(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(&dto.RequestPasswordResetRequest{Email: "a@b.com"}))

	err := v.Validate(&dto.RequestPasswordResetRequest{Email: "not-an-email"})
	verrs, ok := validation.AsErrors(err)
	require.True(t, ok)
	require.Len(t, verrs, 1)
	assert.Equal(t, validation.FieldError{Field: "email", Message: "Invalid email format"}, verrs[0])
}

func TestChangePasswordRejectsShortCurrentPassword(t *testing.T) {
	v := validation.New()

	for _, newPassword := range []string{"", "short", "long-enough-password"} {
		err := v.Validate(&dto.ChangePasswordRequest{CurrentPassword: "short", NewPassword: newPassword})
		assert.Contains(t, fields(t, err), "currentPassword")
	}
}

func TestResetAndActivateUseJSONNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(&dto.ResetPasswordRequest{})
	assert.ElementsMatch(t, []string{"token", "newPassword"}, fields(t, err))

	err = v.Validate(&dto.ActivateAccountRequest{Token: "t", Password: "1234567"})
	assert.Equal(t, []string{"password"}, fields(t, err))

	assert.NoError(t, v.Validate(&dto.ActivateAccountRequest{Token: "t", Password: "12345678"}))
}

func TestServiceNameBounds(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(&dto.ServiceRequest{Name: "T"}))
	assert.NoError(t, v.Validate(&dto.ServiceRequest{Name: strings.Repeat("n", 100)}))

	assert.Equal(t, []string{"name"}, fields(t, v.Validate(&dto.ServiceRequest{Name: ""})))
	assert.Equal(t, []string{"name"}, fields(t, v.Validate(&dto.ServiceRequest{Name: strings.Repeat("n", 101)})))
}

func TestCatalogSchemas(t *testing.T) {
	v := validation.New()

	t.Run("currency code is three uppercase letters", func(t *testing.T) {
		assert.NoError(t, v.Validate(&dto.CurrencyRequest{Code: "EUR", Symbol: "€", Name: "Euro"}))
		assert.Equal(t, []string{"code"}, fields(t, v.Validate(&dto.CurrencyRequest{Code: "eur", Symbol: "€", Name: "Euro"})))
		assert.Equal(t, []string{"code"}, fields(t, v.Validate(&dto.CurrencyRequest{Code: "EURO", Symbol: "€", Name: "Euro"})))
	})

	t.Run("language code length", func(t *testing.T) {
		assert.NoError(t, v.Validate(&dto.LanguageRequest{Name: "German", Code: "de"}))
		assert.Equal(t, []string{"code"}, fields(t, v.Validate(&dto.LanguageRequest{Name: "German", Code: "d"})))
	})

	t.Run("role category is optional", func(t *testing.T) {
		assert.NoError(t, v.Validate(&dto.RoleRequest{Name: "Reviewer"}))
		long := strings.Repeat("c", 65)
		assert.Equal(t, []string{"category"}, fields(t, v.Validate(&dto.RoleRequest{Name: "Reviewer", Category: &long})))
	})

	t.Run("contact phone must be E.164", func(t *testing.T) {
		req := dto.ClientContactPersonRequest{ClientName: "Acme", FullName: "Jane", Email: "jane@acme.example"}
		assert.NoError(t, v.Validate(&req))

		req.Phone = utils.ToPtr("+4915112345678")
		assert.NoError(t, v.Validate(&req))

		req.Phone = utils.ToPtr("0151 1234")
		assert.Equal(t, []string{"phone"}, fields(t, v.Validate(&req)))
	})

	t.Run("admin payment method needs a payment method", func(t *testing.T) {
		assert.Equal(t, []string{"payment_method_id"}, fields(t, v.Validate(&dto.AdminPaymentMethodRequest{})))
		assert.NoError(t, v.Validate(&dto.AdminPaymentMethodRequest{PaymentMethodID: 1}))
	})

	t.Run("specialization toggle requires the flag", func(t *testing.T) {
		assert.Equal(t, []string{"active_flag"}, fields(t, v.Validate(&dto.SetActiveRequest{})))
		assert.NoError(t, v.Validate(&dto.SetActiveRequest{ActiveFlag: utils.ToPtr(false)}))
	})
}

func TestInviteAdmin(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(&dto.InviteAdminRequest{Username: "new_admin", Email: "new@example.com"}))
	assert.ElementsMatch(t,
		[]string{"username", "email"},
		fields(t, v.Validate(&dto.InviteAdminRequest{Username: "ab", Email: "nope"})))
}

func TestErrorsMessage(t *testing.T) {
	errs := validation.Errors{{Field: "email", Message: "Invalid email format"}}
	assert.Equal(t, "validation failed: email: Invalid email format", errs.Error())
}

func TestValidateNonStruct(t *testing.T) {
	v := validation.New()

	err := v.Validate("not a struct")
	require.Error(t, err)
	_, ok := validation.AsErrors(err)
	assert.False(t, ok)
}

// Package businessflow contains the core business logic and use cases of the admin backend
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Admin authentication errors
	ErrAdminNotFound          = errors.New("admin not found")
	ErrAdminInactive          = errors.New("admin is inactive")
	ErrAdminSetupIncomplete   = errors.New("admin has not completed account setup")
	ErrIncorrectPassword      = errors.New("incorrect password")
	ErrInvalidCaptcha         = errors.New("invalid captcha")
	ErrCaptchaNotAvailable    = errors.New("captcha not available")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrInvalidActivationToken = errors.New("invalid activation token")
	ErrInvalidResetToken      = errors.New("invalid reset token")
	ErrResetTokenExpired      = errors.New("reset token has expired")
	ErrPasswordUnchanged      = errors.New("new password must differ from the current password")
	ErrUsernameAlreadyExists  = errors.New("username already exists")
	ErrEmailAlreadyExists     = errors.New("email already exists")

	// Catalog errors
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrInUse         = errors.New("record is still referenced")

	// Admin payment method errors
	ErrPaymentMethodNotFound      = errors.New("payment method not found")
	ErrEmailPaymentDetailNotFound = errors.New("email payment detail not found")
	ErrInactiveDefault            = errors.New("an inactive payment method cannot be the default")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

// AsBusinessError extracts the outermost BusinessError from err
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

func IsAdminNotFound(err error) bool {
	return errors.Is(err, ErrAdminNotFound)
}

func IsAdminInactive(err error) bool {
	return errors.Is(err, ErrAdminInactive)
}

func IsAdminSetupIncomplete(err error) bool {
	return errors.Is(err, ErrAdminSetupIncomplete)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsInvalidCaptcha(err error) bool {
	return errors.Is(err, ErrInvalidCaptcha)
}

func IsCaptchaNotAvailable(err error) bool {
	return errors.Is(err, ErrCaptchaNotAvailable)
}

func IsInvalidRefreshToken(err error) bool {
	return errors.Is(err, ErrInvalidRefreshToken)
}

func IsInvalidActivationToken(err error) bool {
	return errors.Is(err, ErrInvalidActivationToken)
}

func IsInvalidResetToken(err error) bool {
	return errors.Is(err, ErrInvalidResetToken)
}

func IsResetTokenExpired(err error) bool {
	return errors.Is(err, ErrResetTokenExpired)
}

func IsPasswordUnchanged(err error) bool {
	return errors.Is(err, ErrPasswordUnchanged)
}

func IsUsernameAlreadyExists(err error) bool {
	return errors.Is(err, ErrUsernameAlreadyExists)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsInUse(err error) bool {
	return errors.Is(err, ErrInUse)
}

func IsPaymentMethodNotFound(err error) bool {
	return errors.Is(err, ErrPaymentMethodNotFound)
}

func IsEmailPaymentDetailNotFound(err error) bool {
	return errors.Is(err, ErrEmailPaymentDetailNotFound)
}

func IsInactiveDefault(err error) bool {
	return errors.Is(err, ErrInactiveDefault)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

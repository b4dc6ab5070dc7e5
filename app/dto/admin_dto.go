// Package dto
package dto

type AdminDTO struct {
	ID             uint    `json:"id" example:"1"`
	UUID           string  `json:"uuid" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Username       string  `json:"username" example:"admin"`
	Email          string  `json:"email" example:"admin@example.com"`
	IsActive       bool    `json:"is_active" example:"true"`
	SetupCompleted bool    `json:"setup_completed" example:"true"`
	LastLoginAt    *string `json:"last_login_at,omitempty" example:"2024-01-15T10:30:00Z"`
	CreatedAt      string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

type AdminSessionDTO struct {
	AccessToken  string `json:"access_token" example:"jwt"`
	RefreshToken string `json:"refresh_token" example:"jwt"`
	ExpiresIn    int    `json:"expires_in" example:"3600"`
	TokenType    string `json:"token_type" example:"Bearer"`
	CreatedAt    string `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

type AdminCaptchaInitResponse struct {
	ChallengeID       string `json:"challenge_id"`
	MasterImageBase64 string `json:"master_image_base64"`
	ThumbImageBase64  string `json:"thumb_image_base64"`
}

// AdminLoginRequest carries admin credentials. The captcha pair is required only when
// captcha is enabled for the deployment.
type AdminLoginRequest struct {
	Username    string   `json:"username" validate:"required,notblank,max=255"`
	Password    string   `json:"password" validate:"required,min=8,max=128"`
	ChallengeID string   `json:"challenge_id,omitempty"`
	UserAngle   *float64 `json:"user_angle,omitempty"`
}

type AdminLoginResponse struct {
	Admin   AdminDTO        `json:"admin"`
	Session AdminSessionDTO `json:"session"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest optionally names the refresh token to revoke with the access token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=128"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,min=8,max=128"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

type ActivateAccountRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type InviteAdminRequest struct {
	Username string `json:"username" validate:"required,notblank,min=3,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
}

type InviteAdminResponse struct {
	Admin          AdminDTO `json:"admin"`
	ActivationSent bool     `json:"activation_sent"`
}

// AdminDetailsRequest patches the admin details; an empty string clears the field
type AdminDetailsRequest struct {
	Username    *string `json:"username,omitempty" validate:"omitempty,len=0|min=3,max=255"`
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,max=255"`
}

type AdminProfileResponse struct {
	Admin           AdminDTO `json:"admin"`
	DisplayUsername *string  `json:"display_username,omitempty"`
	CompanyName     *string  `json:"company_name,omitempty"`
}

package businessflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/app/services"
	"github.com/amirphl/Omoikane/models"
	"github.com/amirphl/Omoikane/repository"
	"github.com/amirphl/Omoikane/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthOptions tunes the admin authentication flow
type AdminAuthOptions struct {
	CaptchaEnabled bool
	BcryptCost     int
	ResetTokenTTL  time.Duration
	// PublicBaseURL prefixes the activation and reset links sent by email
	PublicBaseURL string
}

// AdminAuthFlow represents the admin authentication flow used by handlers
type AdminAuthFlow interface {
	InitCaptcha(ctx context.Context) (*dto.AdminCaptchaInitResponse, error)
	Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AdminLoginResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.AdminSessionDTO, error)
	Logout(ctx context.Context, accessToken string, req *dto.LogoutRequest) error
	InviteAdmin(ctx context.Context, req *dto.InviteAdminRequest) (*dto.InviteAdminResponse, error)
	ActivateAccount(ctx context.Context, req *dto.ActivateAccountRequest) (*dto.AdminDTO, error)
	RequestPasswordReset(ctx context.Context, req *dto.RequestPasswordResetRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, adminID uint, req *dto.ChangePasswordRequest) error
	BootstrapAdmin(ctx context.Context, username, email string) (activationToken string, created bool, err error)
}

// AdminAuthFlowImpl implements AdminAuthFlow
type AdminAuthFlowImpl struct {
	adminRepo     repository.AdminAuthRepository
	tokenService  services.TokenService
	captchaSvc    services.CaptchaService
	notifications services.NotificationService
	opts          AdminAuthOptions
}

func NewAdminAuthFlow(
	adminRepo repository.AdminAuthRepository,
	tokenService services.TokenService,
	captchaSvc services.CaptchaService,
	notifications services.NotificationService,
	opts AdminAuthOptions,
) AdminAuthFlow {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.ResetTokenTTL <= 0 {
		opts.ResetTokenTTL = utils.ResetTokenTTL
	}
	opts.PublicBaseURL = strings.TrimRight(opts.PublicBaseURL, "/")

	return &AdminAuthFlowImpl{
		adminRepo:     adminRepo,
		tokenService:  tokenService,
		captchaSvc:    captchaSvc,
		notifications: notifications,
		opts:          opts,
	}
}

func (af *AdminAuthFlowImpl) InitCaptcha(ctx context.Context) (*dto.AdminCaptchaInitResponse, error) {
	if af.captchaSvc == nil {
		return nil, NewBusinessError("CAPTCHA_NOT_AVAILABLE", "Captcha service not available", ErrCaptchaNotAvailable)
	}
	ch, err := af.captchaSvc.GenerateRotate(ctx)
	if err != nil {
		return nil, NewBusinessError("CAPTCHA_INIT_FAILED", "Failed to initialize captcha", err)
	}
	return &dto.AdminCaptchaInitResponse{
		ChallengeID:       ch.ID,
		MasterImageBase64: ch.MasterImageBase64,
		ThumbImageBase64:  ch.ThumbImageBase64,
	}, nil
}

func (af *AdminAuthFlowImpl) Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AdminLoginResponse, error) {
	if req == nil {
		return nil, NewBusinessError("ADMIN_LOGIN_VALIDATION_FAILED", "Admin login validation failed", ErrIncorrectPassword)
	}

	// Verify captcha first
	if af.opts.CaptchaEnabled {
		if af.captchaSvc == nil {
			return nil, NewBusinessError("CAPTCHA_NOT_AVAILABLE", "Captcha service not available", ErrCaptchaNotAvailable)
		}
		if req.ChallengeID == "" || req.UserAngle == nil {
			return nil, NewBusinessError("CAPTCHA_INVALID", "Captcha challenge missing", ErrInvalidCaptcha)
		}
		if !af.captchaSvc.VerifyRotate(ctx, req.ChallengeID, *req.UserAngle) {
			return nil, NewBusinessError("CAPTCHA_INVALID", "Captcha validation failed", ErrInvalidCaptcha)
		}
	}

	admin, err := af.adminRepo.ByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil {
		return nil, NewBusinessError("ADMIN_NOT_FOUND", "Admin not found", ErrAdminNotFound)
	}
	// Account state is only revealed to callers holding the password
	if admin.PasswordHash == nil {
		return nil, NewBusinessError("ADMIN_INCORRECT_PASSWORD", "Incorrect password", ErrIncorrectPassword)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*admin.PasswordHash), bcryptInput(req.Password)); err != nil {
		return nil, NewBusinessError("ADMIN_INCORRECT_PASSWORD", "Incorrect password", ErrIncorrectPassword)
	}

	if !utils.IsTrue(admin.IsActive) {
		return nil, NewBusinessError("ADMIN_INACTIVE", "Admin account is inactive", ErrAdminInactive)
	}
	if !utils.IsTrue(admin.SetupCompleted) {
		return nil, NewBusinessError("ADMIN_SETUP_INCOMPLETE", "Admin account setup is not completed", ErrAdminSetupIncomplete)
	}

	accessToken, refreshToken, err := af.tokenService.GenerateAdminTokens(admin.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	now := utils.UTCNow()
	if err := af.adminRepo.UpdateFields(ctx, admin.ID, map[string]any{"last_login_at": now}); err != nil {
		return nil, NewBusinessError("ADMIN_UPDATE_FAILED", "Failed to record login", err)
	}
	admin.LastLoginAt = &now

	if metadata != nil {
		log.Printf("Admin %s logged in from %s (%s)", admin.Username, metadata.IPAddress, metadata.UserAgent)
	}

	return &dto.AdminLoginResponse{
		Admin:   ToAdminDTO(*admin),
		Session: ToAdminSessionDTO(accessToken, refreshToken, af.tokenService.AccessTokenTTL()),
	}, nil
}

func (af *AdminAuthFlowImpl) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.AdminSessionDTO, error) {
	accessToken, refreshToken, adminID, err := af.tokenService.RefreshAdminTokens(ctx, req.RefreshToken)
	if err != nil {
		if isTokenError(err) {
			return nil, NewBusinessError("INVALID_REFRESH_TOKEN", "Invalid refresh token", ErrInvalidRefreshToken)
		}
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Failed to refresh tokens", err)
	}

	admin, err := af.adminRepo.ByID(ctx, adminID)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil {
		return nil, NewBusinessError("ADMIN_NOT_FOUND", "Admin not found", ErrAdminNotFound)
	}
	if !utils.IsTrue(admin.IsActive) {
		return nil, NewBusinessError("ADMIN_INACTIVE", "Admin account is inactive", ErrAdminInactive)
	}

	session := ToAdminSessionDTO(accessToken, refreshToken, af.tokenService.AccessTokenTTL())
	return &session, nil
}

func (af *AdminAuthFlowImpl) Logout(ctx context.Context, accessToken string, req *dto.LogoutRequest) error {
	if err := af.tokenService.RevokeToken(ctx, accessToken); err != nil {
		return NewBusinessError("LOGOUT_FAILED", "Failed to revoke access token", err)
	}

	if req != nil && req.RefreshToken != "" {
		if err := af.tokenService.RevokeToken(ctx, req.RefreshToken); err != nil {
			if isTokenError(err) {
				return NewBusinessError("INVALID_REFRESH_TOKEN", "Invalid refresh token", ErrInvalidRefreshToken)
			}
			return NewBusinessError("LOGOUT_FAILED", "Failed to revoke refresh token", err)
		}
	}
	return nil
}

func (af *AdminAuthFlowImpl) InviteAdmin(ctx context.Context, req *dto.InviteAdminRequest) (*dto.InviteAdminResponse, error) {
	admin, token, err := af.createInvite(ctx, strings.TrimSpace(req.Username), req.Email)
	if err != nil {
		return nil, err
	}

	link := af.opts.PublicBaseURL + "/admin/activate?token=" + token
	body := fmt.Sprintf("Hello %s,\n\nAn administrator account was created for you.\nComplete the setup here: %s\n", admin.Username, link)
	sent := true
	if err := af.notifications.SendEmail(admin.Email, "Activate your admin account", body); err != nil {
		log.Printf("Failed to send activation email to admin %s: %v", admin.Username, err)
		sent = false
	}

	return &dto.InviteAdminResponse{
		Admin:          ToAdminDTO(*admin),
		ActivationSent: sent,
	}, nil
}

// createInvite stores an admin without password that can be activated with the returned token
func (af *AdminAuthFlowImpl) createInvite(ctx context.Context, username, email string) (*models.AdminAuth, string, error) {
	email = utils.NormalizeEmail(email)

	existing, err := af.adminRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, "", NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if existing != nil {
		return nil, "", NewBusinessError("USERNAME_EXISTS", "Username already exists", ErrUsernameAlreadyExists)
	}
	existing, err = af.adminRepo.ByEmail(ctx, email)
	if err != nil {
		return nil, "", NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if existing != nil {
		return nil, "", NewBusinessError("EMAIL_EXISTS", "Email already exists", ErrEmailAlreadyExists)
	}

	token, err := utils.GenerateSecureToken(utils.SecureTokenBytes)
	if err != nil {
		return nil, "", NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate activation token", err)
	}

	admin := &models.AdminAuth{
		UUID:            uuid.New(),
		Username:        username,
		Email:           email,
		ActivationToken: &token,
		IsActive:        utils.ToPtr(true),
		SetupCompleted:  utils.ToPtr(false),
	}
	if err := af.adminRepo.Save(ctx, admin); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, "", NewBusinessError("ADMIN_EXISTS", "Admin already exists", ErrAlreadyExists)
		}
		return nil, "", NewBusinessError("ADMIN_CREATE_FAILED", "Failed to create admin", err)
	}

	return admin, token, nil
}

func (af *AdminAuthFlowImpl) ActivateAccount(ctx context.Context, req *dto.ActivateAccountRequest) (*dto.AdminDTO, error) {
	admin, err := af.adminRepo.ByActivationToken(ctx, req.Token)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil || utils.IsTrue(admin.SetupCompleted) {
		return nil, NewBusinessError("INVALID_ACTIVATION_TOKEN", "Invalid activation token", ErrInvalidActivationToken)
	}

	hash, err := af.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	err = af.adminRepo.UpdateFields(ctx, admin.ID, map[string]any{
		"password_hash":    hash,
		"setup_completed":  true,
		"activation_token": nil,
	})
	if err != nil {
		return nil, NewBusinessError("ADMIN_UPDATE_FAILED", "Failed to activate admin", err)
	}

	admin.PasswordHash = &hash
	admin.SetupCompleted = utils.ToPtr(true)
	admin.ActivationToken = nil

	result := ToAdminDTO(*admin)
	return &result, nil
}

// RequestPasswordReset answers the same way whether or not the email belongs to an admin
func (af *AdminAuthFlowImpl) RequestPasswordReset(ctx context.Context, req *dto.RequestPasswordResetRequest) error {
	admin, err := af.adminRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil || !utils.IsTrue(admin.IsActive) || !utils.IsTrue(admin.SetupCompleted) {
		return nil
	}

	token, err := utils.GenerateSecureToken(utils.SecureTokenBytes)
	if err != nil {
		return NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate reset token", err)
	}

	err = af.adminRepo.UpdateFields(ctx, admin.ID, map[string]any{
		"reset_token":        token,
		"reset_token_expiry": utils.UTCNowAdd(af.opts.ResetTokenTTL),
	})
	if err != nil {
		return NewBusinessError("ADMIN_UPDATE_FAILED", "Failed to store reset token", err)
	}

	link := af.opts.PublicBaseURL + "/admin/reset-password?token=" + token
	body := fmt.Sprintf("Hello %s,\n\nReset your password here: %s\nThe link expires in %s.\n", admin.Username, link, af.opts.ResetTokenTTL)
	if err := af.notifications.SendEmail(admin.Email, "Reset your admin password", body); err != nil {
		log.Printf("Failed to send reset email to admin %s: %v", admin.Username, err)
	}
	return nil
}

func (af *AdminAuthFlowImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	admin, err := af.adminRepo.ByResetToken(ctx, req.Token)
	if err != nil {
		return NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil {
		return NewBusinessError("INVALID_RESET_TOKEN", "Invalid reset token", ErrInvalidResetToken)
	}

	clearToken := map[string]any{"reset_token": nil, "reset_token_expiry": nil}
	if admin.ResetTokenExpiry == nil || utils.IsExpiredPtr(admin.ResetTokenExpiry) {
		if err := af.adminRepo.UpdateFields(ctx, admin.ID, clearToken); err != nil {
			log.Printf("Failed to clear expired reset token of admin %s: %v", admin.Username, err)
		}
		return NewBusinessError("RESET_TOKEN_EXPIRED", "Reset token has expired", ErrResetTokenExpired)
	}

	hash, err := af.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	clearToken["password_hash"] = hash
	if err := af.adminRepo.UpdateFields(ctx, admin.ID, clearToken); err != nil {
		return NewBusinessError("ADMIN_UPDATE_FAILED", "Failed to reset password", err)
	}
	return nil
}

func (af *AdminAuthFlowImpl) ChangePassword(ctx context.Context, adminID uint, req *dto.ChangePasswordRequest) error {
	admin, err := af.adminRepo.ByID(ctx, adminID)
	if err != nil {
		return NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil {
		return NewBusinessError("ADMIN_NOT_FOUND", "Admin not found", ErrAdminNotFound)
	}
	if admin.PasswordHash == nil {
		return NewBusinessError("ADMIN_SETUP_INCOMPLETE", "Admin account setup is not completed", ErrAdminSetupIncomplete)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*admin.PasswordHash), bcryptInput(req.CurrentPassword)); err != nil {
		return NewBusinessError("ADMIN_INCORRECT_PASSWORD", "Current password is incorrect", ErrIncorrectPassword)
	}
	if req.CurrentPassword == req.NewPassword {
		return NewBusinessError("PASSWORD_UNCHANGED", "New password must differ from the current one", ErrPasswordUnchanged)
	}

	hash, err := af.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	err = af.adminRepo.UpdateFields(ctx, admin.ID, map[string]any{
		"password_hash":      hash,
		"reset_token":        nil,
		"reset_token_expiry": nil,
	})
	if err != nil {
		return NewBusinessError("ADMIN_UPDATE_FAILED", "Failed to change password", err)
	}
	return nil
}

// BootstrapAdmin creates the first admin invite when the admin table is empty
func (af *AdminAuthFlowImpl) BootstrapAdmin(ctx context.Context, username, email string) (string, bool, error) {
	count, err := af.adminRepo.Count(ctx, models.AdminAuthFilter{})
	if err != nil {
		return "", false, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to count admins", err)
	}
	if count > 0 {
		return "", false, nil
	}

	_, token, err := af.createInvite(ctx, username, email)
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

func (af *AdminAuthFlowImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), af.opts.BcryptCost)
	if err != nil {
		return "", NewBusinessError("PASSWORD_HASH_FAILED", "Failed to hash password", err)
	}
	return string(hash), nil
}

// bcryptInput truncates password to the 72 bytes bcrypt reads
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > 72 {
		b = b[:72]
	}
	return b
}

func isTokenError(err error) bool {
	return errors.Is(err, services.ErrTokenInvalid) ||
		errors.Is(err, services.ErrTokenExpired) ||
		errors.Is(err, services.ErrTokenRevoked)
}

package handlers

import (
	"log"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/app/middleware"
	"github.com/amirphl/Omoikane/app/validation"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/gofiber/fiber/v3"
)

// AdminAuthHandlerInterface defines the contract for admin auth handlers
type AdminAuthHandlerInterface interface {
	InitCaptcha(c fiber.Ctx) error
	Login(c fiber.Ctx) error
	Refresh(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
	Activate(c fiber.Ctx) error
	RequestPasswordReset(c fiber.Ctx) error
	ResetPassword(c fiber.Ctx) error
	ChangePassword(c fiber.Ctx) error
	InviteAdmin(c fiber.Ctx) error
}

// AdminAuthHandler implements AdminAuthHandlerInterface
type AdminAuthHandler struct {
	baseHandler
	flow businessflow.AdminAuthFlow
}

func NewAdminAuthHandler(flow businessflow.AdminAuthFlow, v *validation.Validator) AdminAuthHandlerInterface {
	return &AdminAuthHandler{
		baseHandler: newBaseHandler(v),
		flow:        flow,
	}
}

// InitCaptcha starts the admin login by returning a rotate captcha challenge
// @Summary Admin captcha init
// @Description Initialize rotate captcha for admin login (returns base64 images and challenge ID)
// @Tags Admin Authentication
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AdminCaptchaInitResponse} "Captcha initialized"
// @Failure 503 {object} dto.APIResponse "Captcha disabled"
// @Failure 500 {object} dto.APIResponse "Failed to initialize captcha"
// @Router /api/v1/admin/auth/captcha/init [get]
func (h *AdminAuthHandler) InitCaptcha(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/auth/captcha/init")
	defer cancel()

	resp, err := h.flow.InitCaptcha(ctx)
	if err != nil {
		return h.flowError(c, err, "Admin captcha init")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Captcha initialized", resp)
}

// Login authenticates an admin with username and password
// @Summary Admin login
// @Description Verify the optional captcha and authenticate admin with username/password
// @Tags Admin Authentication
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin login data"
// @Success 200 {object} dto.APIResponse{data=dto.AdminLoginResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Invalid request or captcha"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Failure 403 {object} dto.APIResponse "Admin inactive or setup incomplete"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/auth/login [post]
func (h *AdminAuthHandler) Login(c fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/auth/login")
	defer cancel()

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	result, err := h.flow.Login(ctx, &req, metadata)
	if err != nil {
		// Unknown usernames and wrong passwords look the same to the caller
		if businessflow.IsAdminNotFound(err) || businessflow.IsIncorrectPassword(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid username or password", "INVALID_CREDENTIALS", nil)
		}
		return h.flowError(c, err, "Admin login")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Login successful", result)
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Refresh admin tokens
// @Tags Admin Authentication
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.AdminSessionDTO} "Tokens refreshed"
// @Failure 401 {object} dto.APIResponse "Invalid refresh token"
// @Router /api/v1/admin/auth/refresh [post]
func (h *AdminAuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/auth/refresh")
	defer cancel()

	session, err := h.flow.Refresh(ctx, &req)
	if err != nil {
		if businessflow.IsAdminNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", "INVALID_REFRESH_TOKEN", nil)
		}
		return h.flowError(c, err, "Token refresh")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tokens refreshed", session)
}

// Logout revokes the current access token and, when given, the refresh token
// @Summary Admin logout
// @Tags Admin Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LogoutRequest false "Refresh token to revoke"
// @Success 200 {object} dto.APIResponse "Logged out"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/auth/logout [post]
func (h *AdminAuthHandler) Logout(c fiber.Ctx) error {
	token, ok := middleware.GetAccessTokenFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "UNAUTHORIZED", nil)
	}

	var req dto.LogoutRequest
	if len(c.Body()) > 0 {
		if ok, err := h.bindJSON(c, &req); !ok {
			return err
		}
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/auth/logout")
	defer cancel()

	if err := h.flow.Logout(ctx, token, &req); err != nil {
		return h.flowError(c, err, "Admin logout")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Logged out", nil)
}

// Activate completes an invited admin's setup
// @Summary Activate admin account
// @Tags Admin Authentication
// @Accept json
// @Produce json
// @Param request body dto.ActivateAccountRequest true "Activation token and password"
// @Success 200 {object} dto.APIResponse{data=dto.AdminDTO} "Account activated"
// @Failure 400 {object} dto.APIResponse "Invalid activation token"
// @Router /api/v1/admin/auth/activate [post]
func (h *AdminAuthHandler) Activate(c fiber.Ctx) error {
	var req dto.ActivateAccountRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/auth/activate")
	defer cancel()

	admin, err := h.flow.ActivateAccount(ctx, &req)
	if err != nil {
		return h.flowError(c, err, "Account activation")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Account activated", admin)
}

// RequestPasswordReset emails a reset link when the address belongs to an admin
// @Summary Request admin password reset
// @Description Always answers with success so that registered emails cannot be discovered
// @Tags Admin Authentication
// @Accept json
// @Produce json
// @Param request body dto.RequestPasswordResetRequest true "Admin email"
// @Success 200 {object} dto.APIResponse "Reset requested"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Router /api/v1/admin/auth/password/reset-request [post]
func (h *AdminAuthHandler) RequestPasswordReset(c fiber.Ctx) error {
	var req dto.RequestPasswordResetRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/auth/password/reset-request")
	defer cancel()

	if err := h.flow.RequestPasswordReset(ctx, &req); err != nil {
		log.Println("Admin password reset request failed", err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "If the email is registered, a reset link has been sent", nil)
}

// ResetPassword sets a new password using a reset token
// @Summary Reset admin password
// @Tags Admin Authentication
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.APIResponse "Password reset"
// @Failure 400 {object} dto.APIResponse "Invalid or expired token"
// @Router /api/v1/admin/auth/password/reset [post]
func (h *AdminAuthHandler) ResetPassword(c fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/auth/password/reset")
	defer cancel()

	if err := h.flow.ResetPassword(ctx, &req); err != nil {
		return h.flowError(c, err, "Password reset")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Password reset successfully", nil)
}

// ChangePassword changes the authenticated admin's password
// @Summary Change admin password
// @Tags Admin Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse "Password changed"
// @Failure 400 {object} dto.APIResponse "Validation failed or current password incorrect"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/admin/auth/password/change [post]
func (h *AdminAuthHandler) ChangePassword(c fiber.Ctx) error {
	adminID, ok, err := h.adminID(c)
	if !ok {
		return err
	}

	var req dto.ChangePasswordRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/auth/password/change")
	defer cancel()

	if err := h.flow.ChangePassword(ctx, adminID, &req); err != nil {
		// A wrong current password must not read as an expired session
		if businessflow.IsIncorrectPassword(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Current password is incorrect", "INCORRECT_PASSWORD", nil)
		}
		return h.flowError(c, err, "Password change")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Password changed successfully", nil)
}

// InviteAdmin creates an admin account and emails its activation link
// @Summary Invite admin
// @Tags Admin Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InviteAdminRequest true "Username and email"
// @Success 201 {object} dto.APIResponse{data=dto.InviteAdminResponse} "Admin invited"
// @Failure 409 {object} dto.APIResponse "Username or email taken"
// @Router /api/v1/admin/admins/invite [post]
func (h *AdminAuthHandler) InviteAdmin(c fiber.Ctx) error {
	var req dto.InviteAdminRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/admins/invite")
	defer cancel()

	resp, err := h.flow.InviteAdmin(ctx, &req)
	if err != nil {
		return h.flowError(c, err, "Admin invite")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Admin invited", resp)
}

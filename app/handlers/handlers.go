// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/app/middleware"
	"github.com/amirphl/Omoikane/app/validation"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/amirphl/Omoikane/utils"
	"github.com/gofiber/fiber/v3"
)

const requestTimeout = 30 * time.Second

// baseHandler carries the response helpers shared by every handler
type baseHandler struct {
	validator *validation.Validator
}

func newBaseHandler(v *validation.Validator) baseHandler {
	if v == nil {
		v = validation.New()
	}
	return baseHandler{validator: v}
}

// ErrorResponse standard JSON error
func (h *baseHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

// SuccessResponse standard JSON success
func (h *baseHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// bindJSON decodes and validates the request body. When ok is false the
// error response has already been written and err is what the handler returns.
func (h *baseHandler) bindJSON(c fiber.Ctx, req any) (ok bool, err error) {
	if err := c.Bind().JSON(req); err != nil {
		return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	return h.validate(c, req)
}

// bindQuery is bindJSON for query string parameters
func (h *baseHandler) bindQuery(c fiber.Ctx, req any) (ok bool, err error) {
	if err := c.Bind().Query(req); err != nil {
		return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	return h.validate(c, req)
}

func (h *baseHandler) validate(c fiber.Ctx, req any) (bool, error) {
	err := h.validator.Validate(req)
	if err == nil {
		return true, nil
	}
	if verrs, ok := validation.AsErrors(err); ok {
		return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", verrs)
	}
	log.Println("Request validation failed", err)
	return false, h.ErrorResponse(c, fiber.StatusInternalServerError, "Validation failed", "INTERNAL_SERVER_ERROR", nil)
}

// pathID parses the :id route parameter
func (h *baseHandler) pathID(c fiber.Ctx) (uint, bool, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id", "INVALID_ID", nil)
	}
	return uint(id), true, nil
}

// adminID reads the authenticated admin set by the auth middleware
func (h *baseHandler) adminID(c fiber.Ctx) (uint, bool, error) {
	id, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		return 0, false, h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "UNAUTHORIZED", nil)
	}
	return id, true, nil
}

// flowError writes the response for an error returned by a business flow
func (h *baseHandler) flowError(c fiber.Ctx, err error, operation string) error {
	status := statusForError(err)
	code, message := "INTERNAL_SERVER_ERROR", operation+" failed"
	if be, ok := businessflow.AsBusinessError(err); ok {
		code, message = be.Code, be.Message
	}
	if status == fiber.StatusInternalServerError {
		log.Println(operation+" failed", err)
	}
	return h.ErrorResponse(c, status, message, code, nil)
}

func statusForError(err error) int {
	switch {
	case businessflow.IsNotFound(err), businessflow.IsAdminNotFound(err):
		return fiber.StatusNotFound
	case businessflow.IsAlreadyExists(err),
		businessflow.IsInUse(err),
		businessflow.IsUsernameAlreadyExists(err),
		businessflow.IsEmailAlreadyExists(err):
		return fiber.StatusConflict
	case businessflow.IsIncorrectPassword(err), businessflow.IsInvalidRefreshToken(err):
		return fiber.StatusUnauthorized
	case businessflow.IsAdminInactive(err), businessflow.IsAdminSetupIncomplete(err):
		return fiber.StatusForbidden
	case businessflow.IsInvalidCaptcha(err),
		businessflow.IsInvalidPage(err),
		businessflow.IsInvalidPageSize(err),
		businessflow.IsInactiveDefault(err),
		businessflow.IsPaymentMethodNotFound(err),
		businessflow.IsEmailPaymentDetailNotFound(err),
		businessflow.IsInvalidActivationToken(err),
		businessflow.IsInvalidResetToken(err),
		businessflow.IsResetTokenExpired(err),
		businessflow.IsPasswordUnchanged(err):
		return fiber.StatusBadRequest
	case businessflow.IsCaptchaNotAvailable(err):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// createRequestContext builds the flow context with request-scoped values.
// The returned cancel must be called once the flow returns.
func (h *baseHandler) createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	return h.createRequestContextWithTimeout(c, endpoint, requestTimeout)
}

func (h *baseHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	if adminID, ok := middleware.GetAdminIDFromContext(c); ok {
		ctx = context.WithValue(ctx, utils.AdminIDKey, adminID)
	}
	return ctx, cancel
}

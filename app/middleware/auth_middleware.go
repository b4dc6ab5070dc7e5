// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/app/services"
	"github.com/gofiber/fiber/v3"
)

// Locals keys set by AdminAuthenticate
const (
	adminIDLocal     = "admin_id"
	tokenIDLocal     = "token_id"
	tokenClaimsLocal = "token_claims"
	accessTokenLocal = "access_token"
	requestIDLocal   = "request_id"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// AdminAuthenticate validates the bearer access token and sets admin-specific context values
func (m *AuthMiddleware) AdminAuthenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Get the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTHORIZATION_HEADER", "Authorization header is required")
		}

		// Check Bearer format
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "INVALID_AUTHORIZATION_FORMAT", "Invalid authorization header format. Expected 'Bearer <token>'")
		}

		// Extract token
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return unauthorized(c, "MISSING_ACCESS_TOKEN", "Access token is required")
		}

		// Validate token, revocation included
		claims, err := m.tokenService.ValidateAdminToken(c.Context(), token)
		if err != nil {
			var code, msg string
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				code = "TOKEN_EXPIRED"
				msg = "Access token has expired"
			case errors.Is(err, services.ErrTokenInvalid):
				code = "TOKEN_INVALID"
				msg = "Invalid access token"
			case errors.Is(err, services.ErrTokenRevoked):
				code = "TOKEN_REVOKED"
				msg = "Access token has been revoked"
			default:
				code = "TOKEN_VALIDATION_FAILED"
				msg = "Token validation failed"
			}
			return unauthorized(c, code, msg)
		}
		if claims.TokenType != services.TokenTypeAccess {
			return unauthorized(c, "TOKEN_INVALID", "Invalid access token")
		}

		c.Locals(adminIDLocal, claims.AdminID)
		c.Locals(tokenIDLocal, claims.TokenID)
		c.Locals(tokenClaimsLocal, claims)
		c.Locals(accessTokenLocal, token)

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals(requestIDLocal, requestID)
		}

		return c.Next()
	}
}

func unauthorized(c fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   dto.ErrorDetail{Code: code},
	})
}

// GetAdminIDFromContext extracts admin ID from the request context
func GetAdminIDFromContext(c fiber.Ctx) (uint, bool) {
	adminID, ok := c.Locals(adminIDLocal).(uint)
	return adminID, ok
}

// GetAccessTokenFromContext returns the raw bearer token of the request
func GetAccessTokenFromContext(c fiber.Ctx) (string, bool) {
	token, ok := c.Locals(accessTokenLocal).(string)
	return token, ok
}

// GetTokenClaimsFromContext extracts token claims from the request context
func GetTokenClaimsFromContext(c fiber.Ctx) (*services.AdminTokenClaims, bool) {
	claims, ok := c.Locals(tokenClaimsLocal).(*services.AdminTokenClaims)
	return claims, ok
}

// RequireAdminAuth ensures admin authentication is present
func RequireAdminAuth(c fiber.Ctx) error {
	adminID, exists := GetAdminIDFromContext(c)
	if !exists {
		return unauthorized(c, "ADMIN_AUTHENTICATION_REQUIRED", "Admin authentication required")
	}
	if adminID == 0 {
		return unauthorized(c, "INVALID_ADMIN_ID", "Invalid admin ID")
	}
	return nil
}

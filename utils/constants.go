package utils

import (
	"time"
)

// Token time constants
const (
	// AccessTokenTTL is the default time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the default time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour

	// ResetTokenTTL is how long a password reset token stays valid (1 hour)
	ResetTokenTTL = time.Hour

	// ActivationTokenTTL is how long an invited admin has to activate the account (7 days)
	ActivationTokenTTL = 7 * 24 * time.Hour

	// SecureTokenBytes is the entropy of activation and reset tokens
	SecureTokenBytes = 32
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Pagination constants
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

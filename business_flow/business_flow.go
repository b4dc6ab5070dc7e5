package businessflow

import (
	"time"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/models"
	"github.com/amirphl/Omoikane/utils"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client information for audit logging
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToAdminDTO converts an admin model to its API representation
func ToAdminDTO(admin models.AdminAuth) dto.AdminDTO {
	var lastLogin *string
	if admin.LastLoginAt != nil {
		lastLogin = utils.ToPtr(utils.FormatRFC3339(*admin.LastLoginAt))
	}
	return dto.AdminDTO{
		ID:             admin.ID,
		UUID:           admin.UUID.String(),
		Username:       admin.Username,
		Email:          admin.Email,
		IsActive:       utils.IsTrue(admin.IsActive),
		SetupCompleted: utils.IsTrue(admin.SetupCompleted),
		LastLoginAt:    lastLogin,
		CreatedAt:      utils.FormatRFC3339(admin.CreatedAt),
	}
}

// ToAdminSessionDTO wraps a token pair for the login and refresh responses
func ToAdminSessionDTO(accessToken, refreshToken string, accessTTL time.Duration) dto.AdminSessionDTO {
	return dto.AdminSessionDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(accessTTL.Seconds()),
		TokenType:    "Bearer",
		CreatedAt:    utils.FormatRFC3339(utils.UTCNow()),
	}
}

// page holds normalized paging parameters
type page struct {
	number int
	size   int
}

func (p page) offset() int {
	return (p.number - 1) * p.size
}

// normalizePage applies defaults to req and rejects out of range values
func normalizePage(req *dto.ListRequest) (page, error) {
	p := page{number: 1, size: utils.DefaultPageSize}
	if req == nil {
		return p, nil
	}
	if req.Page < 0 {
		return p, NewBusinessError("INVALID_PAGE", "Invalid page", ErrInvalidPage)
	}
	if req.Page > 0 {
		p.number = req.Page
	}
	if req.PageSize < 0 || req.PageSize > utils.MaxPageSize {
		return p, NewBusinessError("INVALID_PAGE_SIZE", "Invalid page size", ErrInvalidPageSize)
	}
	if req.PageSize > 0 {
		p.size = req.PageSize
	}
	return p, nil
}

func paginationInfo(p page, total int64) dto.PaginationInfo {
	totalPages := int((total + int64(p.size) - 1) / int64(p.size))
	return dto.PaginationInfo{
		Total:      total,
		Page:       p.number,
		PageSize:   p.size,
		TotalPages: totalPages,
	}
}

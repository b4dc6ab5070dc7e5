package dto

// APIResponse represents the standard API response structure
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty" validate:"omitempty"`
	Error   any    `json:"error,omitempty" validate:"omitempty"`
}

// ErrorDetail represents error details in API responses
type ErrorDetail struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty" validate:"omitempty"`
}

// ListRequest represents the paging and search parameters of list endpoints
type ListRequest struct {
	Page     int    `query:"page" json:"page" validate:"omitempty,gte=1"`
	PageSize int    `query:"page_size" json:"page_size" validate:"omitempty,gte=1,lte=100"`
	Search   string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// ListResponse represents one page of items
type ListResponse[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

package dto

// APIResponse is the standard success envelope: a human-readable message
// plus the payload. The message/data field names are part of the API contract.
type APIResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccessResponse creates a standard success response
func NewSuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Message: message,
		Data:    data,
	}
}

// ListResponse is a success envelope whose data is always present, so empty
// listings serialize as "data": [] rather than omitting the field.
type ListResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// NewListResponse creates a success response for listing endpoints
func NewListResponse(message string, data interface{}) ListResponse {
	return ListResponse{
		Message: message,
		Data:    data,
	}
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Message string    `json:"message"`
	Code    ErrorCode `json:"code,omitempty"`
	// ConflictTripID is set on date-overlap conflicts
	ConflictTripID *int64 `json:"conflict_trip_id,omitempty"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(code ErrorCode, message string) ErrorResponse {
	return ErrorResponse{
		Message: message,
		Code:    code,
	}
}

// NewDateConflictResponse creates the error response for a date overlap
func NewDateConflictResponse(message string, conflictTripID int64) ErrorResponse {
	return ErrorResponse{
		Message:        message,
		Code:           ErrorCodeConflict,
		ConflictTripID: &conflictTripID,
	}
}

// PaginationInfo carries paging metadata for paginated listings
type PaginationInfo struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PaginatedResponse is the envelope for paginated listings
type PaginatedResponse struct {
	PaginationInfo
	Results interface{} `json:"results"`
}

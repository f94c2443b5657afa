package dto

import "time"

// ErrorCode identifies an error category for clients
type ErrorCode string

// Error codes grouped by concern
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeTokenExpired       ErrorCode = "AUTH_002"
	ErrorCodeTokenInvalid       ErrorCode = "AUTH_003"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_004"
	ErrorCodeAccountDisabled    ErrorCode = "AUTH_005"
	ErrorCodeAccountPending     ErrorCode = "AUTH_006"

	// Resource errors
	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeConflict         ErrorCode = "RES_002"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInvalidBody      ErrorCode = "VAL_002"

	// Invite errors
	ErrorCodeInviteInvalid       ErrorCode = "INV_001"
	ErrorCodeInviteQuotaExceeded ErrorCode = "INV_002"
	ErrorCodeInviteEmailOpen     ErrorCode = "INV_003"

	// Post and comment errors
	ErrorCodePostClosed  ErrorCode = "POST_001"
	ErrorCodeReplyExists ErrorCode = "POST_002"

	// General errors
	ErrorCodePermissionDenied ErrorCode = "GEN_001"
	ErrorCodeInternalError    ErrorCode = "GEN_002"
)

// ErrorDetail carries a machine code and a human message
type ErrorDetail struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// NewErrorDetail creates an ErrorDetail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:    code,
		Message: message,
	}
}

// WithDetails attaches extra context to the error detail
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse wraps an error detail in the standard envelope
func NewErrorResponse(detail *ErrorDetail) APIResponse {
	return APIResponse{
		Error:     detail,
		Timestamp: time.Now(),
	}
}

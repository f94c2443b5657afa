package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountPending     = errors.New("account is awaiting approval")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrNicknameAlreadyTaken = errors.New("nickname already taken")
)

// Geo errors
var (
	ErrRegionNotFound   = errors.New("region not found")
	ErrProvinceNotFound = errors.New("province not found")
)

// Post errors
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrPostClosed      = errors.New("post is closed")
	ErrInvalidCategory = errors.New("category must be SEEKING or OFFERING")
	ErrCommentNotFound = errors.New("comment not found")
	ErrReplyExists     = errors.New("comment already has a reply")
)

// Invite errors
var (
	ErrInviteNotFound      = errors.New("invite token invalid or already used")
	ErrInviteQuotaExceeded = errors.New("too many pending invites")
	ErrInviteEmailOpen     = errors.New("an open invite for this email already exists")
)

// Sponsor errors
var (
	ErrSponsorNotFound = errors.New("sponsor announcement not found")
)

// Message errors
var (
	ErrRecipientNotFound = errors.New("recipient not found")
)

// Report errors
var (
	ErrReportNotFound      = errors.New("report not found")
	ErrInvalidReportTarget = errors.New("item type must be post or comment")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

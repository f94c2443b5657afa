package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postigiusti/bacheca/internal/app/models/dto"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP status codes and the
// standard error envelope. Controllers call it from their error paths.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		status, detail := mapError(customErr.Err, customErr.Message)
		if customErr.Details != nil {
			detail.WithDetails(customErr.Details)
		}
		c.JSON(status, dto.NewErrorResponse(detail))
		return
	}

	status, detail := mapError(err, "")
	c.JSON(status, dto.NewErrorResponse(detail))
}

func mapError(err error, message string) (int, *dto.ErrorDetail) {
	detail := func(code dto.ErrorCode, fallback string) *dto.ErrorDetail {
		if message == "" {
			message = fallback
		}
		return dto.NewErrorDetail(code, message)
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, detail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, detail(dto.ErrorCodeTokenExpired, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound),
		errors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized, detail(dto.ErrorCodeTokenInvalid, "Invalid token")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, detail(dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrAccountPending):
		return http.StatusForbidden, detail(dto.ErrorCodeAccountPending, "Account is awaiting approval")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, detail(dto.ErrorCodePermissionDenied, "Insufficient permissions")

	case errors.Is(err, apperrors.ErrInviteQuotaExceeded):
		return http.StatusConflict, detail(dto.ErrorCodeInviteQuotaExceeded, "Invite quota exhausted")
	case errors.Is(err, apperrors.ErrInviteEmailOpen):
		return http.StatusConflict, detail(dto.ErrorCodeInviteEmailOpen, "An open invite already targets this email")
	case errors.Is(err, apperrors.ErrInviteNotFound):
		return http.StatusNotFound, detail(dto.ErrorCodeInviteInvalid, "Invite token invalid or already used")

	case errors.Is(err, apperrors.ErrPostClosed):
		return http.StatusConflict, detail(dto.ErrorCodePostClosed, "Post is closed")
	case errors.Is(err, apperrors.ErrReplyExists):
		return http.StatusConflict, detail(dto.ErrorCodeReplyExists, "Comment already has a reply")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, detail(dto.ErrorCodeConflict, "Email already registered")
	case errors.Is(err, apperrors.ErrNicknameAlreadyTaken):
		return http.StatusConflict, detail(dto.ErrorCodeConflict, "Nickname already taken")

	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrRecipientNotFound),
		errors.Is(err, apperrors.ErrRegionNotFound),
		errors.Is(err, apperrors.ErrProvinceNotFound),
		errors.Is(err, apperrors.ErrPostNotFound),
		errors.Is(err, apperrors.ErrCommentNotFound),
		errors.Is(err, apperrors.ErrSponsorNotFound),
		errors.Is(err, apperrors.ErrReportNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, detail(dto.ErrorCodeResourceNotFound, "Resource not found")

	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, detail(dto.ErrorCodeConflict, "Conflict")

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidCategory),
		errors.Is(err, apperrors.ErrInvalidReportTarget),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, detail(dto.ErrorCodeValidationFailed, "Validation failed")
	}

	logger.Error().Err(err).Msg("Unhandled service error")
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalError, "Internal server error")
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/pkg/apperrors"
	"github.com/traveltogether/api/internal/pkg/logger"
)

// HandleAPIError maps application errors onto HTTP status codes and the
// standard error envelope. Custom error messages survive the mapping; date
// conflicts additionally carry the conflicting trip id.
func HandleAPIError(c *gin.Context, err error) {
	var dateConflict *apperrors.DateConflictError
	if errors.As(err, &dateConflict) {
		c.JSON(http.StatusConflict,
			dto.NewDateConflictResponse(dateConflict.Error(), dateConflict.TripID))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrTripNotFound),
		errors.Is(err, apperrors.ErrParticipationNotFound):
		c.JSON(http.StatusNotFound,
			dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, messageOf(err, "resource not found")))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeInvalidCredentials, "invalid credentials"))

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeExpiredToken, "token expired"))

	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "invalid token"))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.ErrorCodeForbidden, messageOf(err, "permission denied")))

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict,
			dto.NewErrorResponse(dto.ErrorCodeResourceAlreadyExists, err.Error()))

	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict,
			dto.NewErrorResponse(dto.ErrorCodeConflict, messageOf(err, "conflict")))

	// Business-rule rejections on the join flow report as bad requests,
	// matching what clients of this API already handle; only date overlaps
	// surface as 409.
	case errors.Is(err, apperrors.ErrTripFull),
		errors.Is(err, apperrors.ErrAlreadyAccepted),
		errors.Is(err, apperrors.ErrAlreadyPending),
		errors.Is(err, apperrors.ErrTerminalStatus):
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeConflict, messageOf(err, "conflict")))

	case errors.Is(err, apperrors.ErrOwnTrip),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, messageOf(err, "bad request")))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.ErrorCodeInternalServer, "internal server error"))
	}
}

// messageOf prefers the error's own message over the fallback, keeping
// internal wrap chains out of client responses.
func messageOf(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		return custom.Error()
	}
	if msg := err.Error(); len(msg) <= 120 {
		return msg
	}
	return fallback
}

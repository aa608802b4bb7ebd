package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/pkg/apperrors"
)

func runHandleAPIError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(ctx, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder, body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"trip not found", apperrors.ErrTripNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"participation not found", apperrors.ErrParticipationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"forbidden", apperrors.NewForbiddenError("nope"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"email taken", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"trip full", apperrors.ErrTripFull, http.StatusBadRequest, dto.ErrorCodeConflict},
		{"already pending", apperrors.ErrAlreadyPending, http.StatusBadRequest, dto.ErrorCodeConflict},
		{"terminal status", apperrors.ErrTerminalStatus, http.StatusBadRequest, dto.ErrorCodeConflict},
		{"own trip", apperrors.ErrOwnTrip, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid status", apperrors.ErrInvalidStatus, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unknown error", errors.New("broken pipe"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := runHandleAPIError(t, tt.err)
			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestHandleAPIErrorDateConflictCarriesTripID(t *testing.T) {
	recorder, body := runHandleAPIError(t, apperrors.NewDateConflictError(42))

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, dto.ErrorCodeConflict, body.Code)
	require.NotNil(t, body.ConflictTripID)
	assert.Equal(t, int64(42), *body.ConflictTripID)
}

func TestHandleAPIErrorKeepsCustomMessages(t *testing.T) {
	_, body := runHandleAPIError(t, apperrors.NewForbiddenError("only the trip creator can respond to join requests"))

	assert.Equal(t, "only the trip creator can respond to join requests", body.Message)
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	_, body := runHandleAPIError(t, errors.New("pq: connection refused on 10.0.0.5:5432"))

	assert.Equal(t, "internal server error", body.Message)
}

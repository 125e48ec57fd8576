// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnahth/hadith-api/internal/platform/apperr"
)

func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperr.AppError
		wantStatus int
		wantCode   string
	}{
		{"not_found", apperr.NotFound("Hadith"), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", apperr.Unauthorized("Invalid credentials"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", apperr.Forbidden("Admin only"), http.StatusForbidden, "FORBIDDEN"},
		{"conflict", apperr.Conflict("Already translated"), http.StatusConflict, "CONFLICT"},
		{"validation", apperr.ValidationError("Invalid input"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"rate_limited", apperr.RateLimited(30), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"unprocessable", apperr.Unprocessable("No Arabic source"), http.StatusUnprocessableEntity, "UNPROCESSABLE"},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unavailable", apperr.ServiceUnavailable("Translation disabled"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantStatus, tc.err.HTTPStatus)
			assert.Equal(t, tc.wantCode, tc.err.Code)
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}

// TestInternal_HidesCause verifies that the wrapped cause never reaches the
// client-facing message.
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation core.hadith does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "core.hadith")
	assert.ErrorIs(t, err, cause, "cause stays reachable for logging")
}

func TestAs_TraversesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load hadith: %w", apperr.NotFound("Hadith"))

	require.True(t, apperr.IsAppError(wrapped))
	extracted := apperr.As(wrapped)
	require.NotNil(t, extracted)
	assert.Equal(t, http.StatusNotFound, extracted.HTTPStatus)

	assert.False(t, apperr.IsAppError(errors.New("plain")))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

func TestValidationError_Details(t *testing.T) {
	err := apperr.ValidationError("Invalid input",
		apperr.FieldError{Field: "ordinal", Message: "must be positive"},
	)

	require.Len(t, err.Details, 1)
	assert.Equal(t, "ordinal", err.Details[0].Field)
}

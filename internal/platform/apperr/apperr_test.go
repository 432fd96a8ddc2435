// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voyara/internal/platform/apperr"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		err    *apperr.AppError
		code   string
		status int
	}{
		{apperr.NotFound("Guide"), "NOT_FOUND", http.StatusNotFound},
		{apperr.Unauthorized("Authentication required"), "UNAUTHORIZED", http.StatusUnauthorized},
		{apperr.Forbidden("Insufficient permissions"), "FORBIDDEN", http.StatusForbidden},
		{apperr.Conflict("Resource already exists"), "CONFLICT", http.StatusConflict},
		{apperr.ValidationError("Validation failed"), "VALIDATION_ERROR", http.StatusBadRequest},
		{apperr.RateLimited(2), "RATE_LIMITED", http.StatusTooManyRequests},
		{apperr.Unprocessable("Guide catalogue is read-only"), "UNPROCESSABLE", http.StatusUnprocessableEntity},
		{apperr.Internal(nil), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Error())
		})
	}

	assert.Equal(t, "Too many requests. Try again in 2s.", apperr.RateLimited(2).Message)
}

func TestAs(t *testing.T) {
	assert.Nil(t, apperr.As(nil))
	assert.Nil(t, apperr.As(errors.New("plain")))

	notFound := apperr.NotFound("Guide")
	wrapped := fmt.Errorf("get guide: %w", notFound)

	found := apperr.As(wrapped)
	require.NotNil(t, found)
	assert.Same(t, notFound, found)
}

func TestWithCause(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	conflict := apperr.Conflict("Resource already exists").WithCause(cause)

	assert.ErrorIs(t, conflict, cause)
	assert.Equal(t, "Resource already exists", conflict.Error())
}

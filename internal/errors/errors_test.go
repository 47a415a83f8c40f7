package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"bad credentials map to validation failure", ErrInvalidCredentials, http.StatusBadRequest},
		{"email taken", ErrEmailTaken, http.StatusBadRequest},
		{"image too large", fmt.Errorf("%w: 2049KB", ErrImageTooLarge), http.StatusBadRequest},
		{"invalid image", ErrInvalidImage, http.StatusBadRequest},
		{"field errors", NewFieldError("title", "This field is required."), http.StatusBadRequest},
		{"unknown errors stay internal", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
		})
	}
}

func TestMapErrorToHTTP_Bodies(t *testing.T) {
	t.Run("detail body for not found", func(t *testing.T) {
		httpErr := MapErrorToHTTP(ErrNotFound)
		body, ok := httpErr.Body.(ErrorResponse)
		assert.True(t, ok)
		assert.NotEmpty(t, body.Detail)
	})

	t.Run("credentials failure uses non_field_errors", func(t *testing.T) {
		httpErr := MapErrorToHTTP(ErrInvalidCredentials)
		body, ok := httpErr.Body.(FieldErrors)
		assert.True(t, ok)
		assert.Contains(t, body, "non_field_errors")
	})

	t.Run("email taken is reported on the email field", func(t *testing.T) {
		httpErr := MapErrorToHTTP(ErrEmailTaken)
		body, ok := httpErr.Body.(FieldErrors)
		assert.True(t, ok)
		assert.Contains(t, body, "email")
	})
}

func TestIsDuplicateEntry(t *testing.T) {
	assert.True(t, IsDuplicateEntry(&mysql.MySQLError{Number: 1062}))
	assert.True(t, IsDuplicateEntry(fmt.Errorf("create: %w", &mysql.MySQLError{Number: 1062})))
	assert.False(t, IsDuplicateEntry(&mysql.MySQLError{Number: 1040}))
	assert.False(t, IsDuplicateEntry(assert.AnError))
}

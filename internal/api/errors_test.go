package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/service/authz"
	"github.com/phrazzld/taskboard-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"expired refresh token", auth.ErrExpiredRefreshToken, http.StatusUnauthorized},
		{"missing auth context", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"not task viewer", authz.ErrNotTaskViewer, http.StatusForbidden},
		{"not task editor", authz.ErrNotTaskEditor, http.StatusForbidden},
		{"not task creator", authz.ErrNotTaskCreator, http.StatusForbidden},
		{"admin only", authz.ErrAdminOnly, http.StatusForbidden},
		{"self delete", authz.ErrSelfDelete, http.StatusBadRequest},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid status", domain.ErrInvalidTaskStatus, http.StatusBadRequest},
		{"invalid priority", domain.ErrInvalidTaskPriority, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("loading task: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"wrapped forbidden", fmt.Errorf("checking access: %w", authz.ErrNotTaskCreator), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"self delete", authz.ErrSelfDelete, "Cannot delete yourself"},
		{"not task viewer", authz.ErrNotTaskViewer, "Not authorized to view this task"},
		{"not task creator", authz.ErrNotTaskCreator, "Not authorized to delete this task"},
		{"task not found", store.ErrTaskNotFound, "Task not found"},
		{"user not found", store.ErrUserNotFound, "User not found"},
		{"email exists", store.ErrEmailExists, "Email already exists"},
		{"unknown error hides details", errors.New("pq: duplicate key value violates unique constraint"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestGetSafeErrorMessageValidationField(t *testing.T) {
	t.Parallel()

	err := domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID)
	assert.Equal(t, "Invalid id: has invalid format", GetSafeErrorMessage(err))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag",
	)
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}

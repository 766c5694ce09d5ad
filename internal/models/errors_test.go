package models

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Not found", NewNotFoundError("Book", 7), fiber.StatusNotFound},
		{"Unauthorized", NewUnauthorizedError("Invalid token"), fiber.StatusUnauthorized},
		{"Validation", NewValidationError("The title field is required."), fiber.StatusBadRequest},
		{"Invalid data", NewInvalidDataError(errors.New("connection reset")), fiber.StatusBadRequest},
		{"Plain error", errors.New("boom"), fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusForError(tt.err))
		})
	}
}

func TestAppErrorMessages(t *testing.T) {
	assert.Equal(t, "Book with ID 7 not found", NewNotFoundError("Book", 7).Message)
	assert.Equal(t, "Invalid data: connection reset",
		NewInvalidDataError(errors.New("connection reset")).Message)

	var appErr *AppError
	assert.True(t, errors.As(NewValidationError("nope"), &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// AppError represents a custom application error.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

// NewInvalidDataError wraps an unexpected persistence or collaborator failure.
// These surface as 400 responses; the underlying cause is included in the
// message but never a stack trace.
func NewInvalidDataError(err error) *AppError {
	return &AppError{
		Code:    "INVALID_DATA",
		Message: fmt.Sprintf("Invalid data: %v", err),
		Err:     err,
	}
}

// RespondWithError creates a standardized error response.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Message: appErr.Message,
			Code:    appErr.Code,
		}
	} else {
		response = ErrorResponse{
			Message: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}

// StatusForError maps an application error to its HTTP status. Anything that
// is not a not-found or auth failure collapses to 400.
func StatusForError(err error) int {
	if appErr, ok := err.(*AppError); ok {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		}
	}
	return fiber.StatusBadRequest
}

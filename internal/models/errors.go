package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ValidationResponse is the body returned for rejected input.
type ValidationResponse struct {
	Errors []string `json:"errors"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	// Errors holds the ordered rule messages of a validation failure.
	Errors []string
	Err    error
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

// NewNotFoundError reports that the named resource does not exist.
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: resource + " not found",
	}
}

// NewValidationError builds a validation failure from rule messages, in order.
func NewValidationError(messages ...string) *AppError {
	msg := "Validation failed"
	if len(messages) == 1 {
		msg = messages[0]
	}
	return &AppError{
		Code:    CodeValidation,
		Message: msg,
		Errors:  messages,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == CodeNotFound
}

// StatusCode maps an error to the HTTP status it should be rendered with.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeValidation:
			return fiber.StatusBadRequest
		case CodeNotFound:
			return fiber.StatusNotFound
		}
		return fiber.StatusInternalServerError
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

// RespondWithError writes the standardized error body for err. Internal
// details are only included when withDetails is set.
func RespondWithError(c *fiber.Ctx, err error, withDetails bool) error {
	status := StatusCode(err)

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code == CodeValidation {
			return c.Status(status).JSON(ValidationResponse{Errors: appErr.Errors})
		}
		response := ErrorResponse{
			Message: appErr.Message,
			Code:    appErr.Code,
		}
		if withDetails && appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
		return c.Status(status).JSON(response)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(status).JSON(ErrorResponse{Message: fiberErr.Message})
	}

	response := ErrorResponse{
		Message: "Internal server error",
		Code:    CodeInternal,
	}
	if withDetails {
		response.Details = err.Error()
	}
	return c.Status(status).JSON(response)
}

// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/restboard/restboard/internal/errors"
)

// ErrorResponse represents a structured error response.
// StatusCode mirrors the HTTP status so API clients can treat the body as
// self-contained; Code is a stable machine-readable identifier.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// NewErrorResponse builds an ErrorResponse for the given status, code and message.
func NewErrorResponse(statusCode int, code, message string) ErrorResponse {
	return ErrorResponse{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	// Map domain errors to HTTP status codes
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = NewErrorResponse(statusCode, "not_found", "The requested resource was not found")

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = NewErrorResponse(statusCode, "conflict", "A conflict occurred with existing data")

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = NewErrorResponse(statusCode, "invalid_input", err.Error())

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = NewErrorResponse(statusCode, "unauthorized", "Authentication is required")

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		errorResponse = NewErrorResponse(statusCode, "forbidden", "You don't have permission to access this resource")

	default:
		// For unknown/internal errors, don't expose details to the client
		statusCode = http.StatusInternalServerError
		errorResponse = NewErrorResponse(statusCode, "internal_error", "An internal error occurred")
	}

	// Log the full error details (including wrapped errors)
	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Code),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "bad_request", err.Error()))
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(
		http.StatusUnprocessableEntity,
		NewErrorResponse(http.StatusUnprocessableEntity, "validation_error", err.Error()),
	)
}

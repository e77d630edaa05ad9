package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zapshift/internal/repository"
	"zapshift/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidSessionID),
		errors.Is(err, service.ErrInvalidParcelID),
		errors.Is(err, service.ErrInvalidSenderEmail),
		errors.Is(err, service.ErrInvalidParcelName),
		errors.Is(err, service.ErrInvalidCost),
		errors.Is(err, service.ErrInvalidEmail):
		return http.StatusBadRequest

	// Authenticated identity mismatch
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Gateway unreachable or unknown session
	case errors.Is(err, service.ErrSessionLookup):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/repository"
	"fleet/internal/service"
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
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrRentalNotFound),
		errors.Is(err, service.ErrDriverNotFound),
		errors.Is(err, service.ErrVehicleNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrStartDateInPast),
		errors.Is(err, service.ErrEndBeforeStart),
		errors.Is(err, service.ErrNegativeKilometers),
		errors.Is(err, service.ErrEmptyDestination):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrVehicleAlreadyRented),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrInUse),
		errors.Is(err, repository.ErrRentalOverlap):
		return http.StatusConflict

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

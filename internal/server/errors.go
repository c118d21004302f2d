package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/lead-radar/internal/analysis"
	"github.com/jonathan/lead-radar/internal/db"
	"github.com/jonathan/lead-radar/internal/places"
	"github.com/jonathan/lead-radar/internal/schemas"
)

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound   *ErrNotFound
		validation *ErrValidation
		fields     validator.ValidationErrors
		schemaErr  *schemas.ValidationError
		apiErr     *places.APIError
		parseErr   *analysis.ParseError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &fields), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrLeadExists):
		return http.StatusConflict
	case errors.As(err, &apiErr):
		// Upstream client errors pass through; upstream outages are a bad gateway.
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	case errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

package recommendations

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/validation"
)

// Domain errors for recommendation operations.
var (
	ErrNotFound             = errors.New("recommendation not found")
	ErrDuplicate            = errors.New("recommendation already exists")
	ErrInterventionNotFound = errors.New("intervention not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidIDs           = errors.New("intervention_ids must be a comma-separated list of positive integers")
	ErrInvalidLimit         = errors.New("limit must be an integer")
)

// MapHTTPStatus maps recommendation domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInterventionNotFound),
		errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidIDs),
		errors.Is(err, ErrInvalidLimit),
		errors.Is(err, handlers.ErrInvalidID),
		errors.Is(err, handlers.ErrInvalidBody),
		validation.IsValidationError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

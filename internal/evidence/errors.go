package evidence

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/validation"
)

// Domain errors for evidence operations.
var (
	ErrNotFound             = errors.New("evidence not found")
	ErrDuplicate            = errors.New("evidence already exists")
	ErrInterventionNotFound = errors.New("intervention not found")
	ErrInvalidQuality       = errors.New("quality threshold must be between 0 and 100")
)

// MapHTTPStatus maps evidence domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInterventionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidQuality),
		errors.Is(err, handlers.ErrInvalidID),
		errors.Is(err, handlers.ErrInvalidBody),
		validation.IsValidationError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

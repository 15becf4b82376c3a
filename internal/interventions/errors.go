package interventions

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/validation"
)

// Domain errors for intervention operations.
var (
	ErrNotFound        = errors.New("intervention not found")
	ErrDuplicate       = errors.New("intervention name already exists")
	ErrRiskNotFound    = errors.New("risk factor not found")
	ErrBenefitNotFound = errors.New("benefit not found")
	ErrInvalidCategory = errors.New("category must be nutrition, exercise, sleep, supplement, or medical")
	ErrInvalidLevel    = errors.New("evidence level must be between 1 and 4")
)

// MapHTTPStatus maps intervention domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrRiskNotFound),
		errors.Is(err, ErrBenefitNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidLevel),
		errors.Is(err, handlers.ErrInvalidID),
		errors.Is(err, handlers.ErrInvalidBody),
		validation.IsValidationError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

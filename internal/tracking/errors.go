package tracking

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/validation"
)

// Domain errors for tracking operations.
var (
	ErrNotFound             = errors.New("tracking not found")
	ErrGoalNotFound         = errors.New("goal not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInterventionNotFound = errors.New("intervention not found")
	ErrDuplicate            = errors.New("tracking record already exists")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidDays          = errors.New("days must be a positive integer")
	ErrBiomarkerRequired    = errors.New("biomarker_name is required")
)

// MapHTTPStatus maps tracking domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrGoalNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrInterventionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidDays),
		errors.Is(err, ErrBiomarkerRequired),
		errors.Is(err, handlers.ErrInvalidID),
		errors.Is(err, handlers.ErrInvalidBody),
		validation.IsValidationError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

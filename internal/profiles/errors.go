package profiles

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/validation"
)

// Domain errors for user and profile operations.
var (
	ErrNotFound        = errors.New("user not found")
	ErrDuplicate       = errors.New("username or email already registered")
	ErrProfileNotFound = errors.New("health profile not found")
)

// MapHTTPStatus maps profile domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, handlers.ErrInvalidID),
		errors.Is(err, handlers.ErrInvalidBody),
		validation.IsValidationError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

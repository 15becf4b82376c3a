package interactions

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/validation"
)

// ErrInvalidCatalog indicates catalog data could not be decoded.
var ErrInvalidCatalog = errors.New("invalid interaction catalog")

// MapHTTPStatus maps interaction errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, handlers.ErrInvalidBody) || validation.IsValidationError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

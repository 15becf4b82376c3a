package reports

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/storage"
)

// Domain errors for report operations.
var (
	ErrNotFound     = errors.New("report not found")
	ErrDuplicate    = errors.New("report already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidID    = errors.New("invalid report id")
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)

// MapHTTPStatus maps report domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidLimit),
		errors.Is(err, handlers.ErrInvalidID):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

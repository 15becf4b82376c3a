package storage

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

var (
	// ErrNotFound indicates the requested blob does not exist.
	ErrNotFound = errors.New("blob not found")
	// ErrEmptyKey indicates an empty storage key was provided.
	ErrEmptyKey = errors.New("storage key must not be empty")
	// ErrInvalidKey indicates the storage key contains a path traversal segment.
	ErrInvalidKey = errors.New("storage key contains invalid path segment")
	// ErrInvalidMaxResults indicates max_results is not a positive integer.
	ErrInvalidMaxResults = errors.New("max_results must be a positive integer")
)

// MapHTTPStatus maps storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey),
		errors.Is(err, ErrInvalidKey),
		errors.Is(err, ErrInvalidMaxResults):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ParseMaxResults parses a max_results query value, falling back to limit
// when empty and clamping to limit otherwise.
func ParseMaxResults(s string, limit int32) (int32, error) {
	if s == "" {
		return limit, nil
	}

	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxResults, s)
	}

	return min(int32(n), limit), nil
}

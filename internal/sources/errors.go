package sources

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/longevity/pkg/storage"
)

// Domain errors for evidence source operations.
var (
	ErrNotFound         = errors.New("evidence source not found")
	ErrDuplicate        = errors.New("evidence source already exists")
	ErrEvidenceNotFound = errors.New("evidence not found")
	ErrFileTooLarge     = errors.New("file exceeds maximum upload size")
	ErrInvalidFile      = errors.New("invalid file")
	ErrInvalidID        = errors.New("invalid source id")
)

// MapHTTPStatus maps evidence source errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrEvidenceNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidFile),
		errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Package handlers provides JSON response and request helpers shared by domain HTTP handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/longevity/pkg/validation"
)

var (
	// ErrInvalidID indicates a path or query identifier is not a positive integer.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrInvalidBody indicates the request body is not valid JSON for the target type.
	ErrInvalidBody = errors.New("invalid request body")
)

// RespondJSON writes data as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as {"error": message}.
// Validation errors also carry their failed fields.
// Server errors are logged at error level; client errors at warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}

	body := map[string]any{"error": err.Error()}

	var verr *validation.Error
	if errors.As(err, &verr) {
		body["fields"] = verr.Fields
	}

	RespondJSON(w, status, body)
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

// DecodeValid decodes the request body into v and validates its struct tags.
func DecodeValid(r *http.Request, v any) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return validation.Struct(v)
}

// PathID parses the named path value as a positive int64.
func PathID(r *http.Request, name string) (int64, error) {
	return ParseID(r.PathValue(name))
}

// ParseID parses s as a positive int64 identifier.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// QueryInt parses the named query value as an int, returning def when absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return n, nil
}

// RespondAttachment streams body as a file download named filename.
// A non-positive length omits Content-Length.
func RespondAttachment(w http.ResponseWriter, body io.Reader, contentType string, length int64, filename string) {
	w.Header().Set("Content-Type", contentType)
	if length > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}

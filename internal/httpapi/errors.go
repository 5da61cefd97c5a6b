package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"diagnosd/pkg/types"
)

// HTTPError allows an error to carry the HTTP status it should map to.
type HTTPError interface {
	error
	StatusCode() int
}

// fieldError rejects one form field that is missing or not a number.
type fieldError struct {
	field  string
	reason string
}

func (e fieldError) Error() string   { return "field " + e.field + ": " + e.reason }
func (e fieldError) StatusCode() int { return http.StatusUnprocessableEntity }

// statusOf maps err to a response status, defaulting to fallback.
func statusOf(err error, fallback int) int {
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	return fallback
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

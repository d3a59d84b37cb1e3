package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when the backend has no such user or post.
var ErrNotFound = errors.New("not found")

// APIError represents a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// newAPIError builds an APIError from a status code and the backend's
// optional {"message": "..."} body.
func newAPIError(status int, message string) *APIError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("backend error: %s (status %d)", message, status),
	}
}

package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidRequest signals a search request that failed validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrBackendUnavailable signals that the search backend could not be reached.
	ErrBackendUnavailable = errors.New("search backend unavailable")
	// ErrBackendRejected signals a non-2xx answer from the search backend.
	ErrBackendRejected = errors.New("search backend rejected request")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// BackendError carries the status and message of a rejected backend call.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Unwrap().Error(), e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Unwrap().Error(), e.StatusCode, e.Message)
}

// Unwrap maps 429 to ErrRateLimited and every other status to ErrBackendRejected.
func (e *BackendError) Unwrap() error {
	if e.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	return ErrBackendRejected
}

// NewBackendError creates a backend rejection error.
func NewBackendError(statusCode int, message string) error {
	return &BackendError{StatusCode: statusCode, Message: message}
}

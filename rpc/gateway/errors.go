package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError is returned when the gateway answered a request with a non-success
// status code.
type RequestError struct {
	Method     string
	StatusCode int
	Message    string
}

func (e RequestError) Error() string {
	return fmt.Sprintf("gateway rejected %s (status %d): %s", e.Method, e.StatusCode, e.Message)
}

// Retryable returns true for statuses that indicate a transient gateway condition.
func (e RequestError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// IsRequestError returns true if the error, or an error it wraps, is a RequestError.
func IsRequestError(err error) bool {
	var target RequestError
	return errors.As(err, &target)
}

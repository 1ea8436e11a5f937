package service

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusTransport is the APIError status used when no HTTP response was
// obtained or the response could not be decoded.
const StatusTransport = 0

// APIError is the single error shape produced by a Service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsTransport reports whether the error happened before a usable response.
func (e *APIError) IsTransport() bool {
	return e.Status == StatusTransport
}

// TransportError builds an APIError for network and decoding failures.
func TransportError(err error) *APIError {
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &APIError{Status: StatusTransport, Message: "Network error: " + msg}
}

// HTTPError builds an APIError for a non-2xx response.
// An empty message falls back to the status line.
func HTTPError(status int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}
	return &APIError{Status: status, Message: message}
}

// AsAPIError extracts an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsClientError reports whether err is an APIError with a 4xx status.
func IsClientError(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status >= 400 && apiErr.Status < 500
}

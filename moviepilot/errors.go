package moviepilot

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid moviepilot configuration")
)

// ErrorKind classifies an APIError
type ErrorKind string

const (
	// KindAPI indicates the remote API returned a non-auth error status
	KindAPI ErrorKind = "api"
	// KindNetwork indicates a transport-level failure (DNS, connect, timeout)
	KindNetwork ErrorKind = "network"
	// KindUnexpected indicates a failure that could not be classified
	KindUnexpected ErrorKind = "unexpected"
)

// AuthError represents a login failure or an auth-rejected request
// whose retries are exhausted.
type AuthError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *AuthError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("moviepilot auth error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("moviepilot auth error: %s", e.Message)
}

// APIError represents a MoviePilot API, network, or unexpected error
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("moviepilot %s error: status %d: %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("moviepilot %s error: %s", e.Kind, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsNetwork checks if the error indicates a transport-level failure
func (e *APIError) IsNetwork() bool {
	return e.Kind == KindNetwork
}

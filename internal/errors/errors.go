// Package errors provides structured error types for the project viewer.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrFetchFailed = errors.New("failed to fetch project data")
	ErrNotFound    = errors.New("resource not found")
	ErrUnavailable = errors.New("service unavailable")
	ErrRateLimit   = errors.New("rate limit exceeded")
	ErrInvalidJSON = errors.New("invalid JSON payload")
)

// FetchFailedMessage is shown on the viewer page when the API rejects a request.
const FetchFailedMessage = "Failed to fetch project data"

// Kind classifies why a project load failed.
type Kind string

const (
	KindTransport Kind = "transport"
	KindStatus    Kind = "status"
	KindDecode    Kind = "decode"
)

// APIError represents a non-success response from the ArkIDE API.
type APIError struct {
	Service    string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s API error (status %d): %s: %v", e.Service, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Service, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is maps status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrFetchFailed:
		return true
	case ErrNotFound:
		return e.StatusCode == 404
	case ErrRateLimit:
		return e.StatusCode == 429
	case ErrUnavailable:
		return e.StatusCode >= 500
	}
	return false
}

// NewAPIError creates a new API error.
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{Service: service, StatusCode: statusCode, Message: message}
}

// LoadError is the structured failure carried by a viewer load result.
type LoadError struct {
	Kind       Kind
	ProjectID  string
	StatusCode int
	Message    string
	Err        error
}

func (e *LoadError) Error() string { return e.Message }

func (e *LoadError) Unwrap() error { return e.Err }

// Classify converts an error from the API client into a LoadError for projectID.
// Non-success statuses keep the user-facing message of the viewer page.
func Classify(projectID string, err error) *LoadError {
	le := &LoadError{ProjectID: projectID, Message: err.Error(), Err: err, Kind: KindTransport}

	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		le.Kind = KindStatus
		le.StatusCode = apiErr.StatusCode
		le.Message = FetchFailedMessage
	case errors.Is(err, ErrInvalidJSON):
		le.Kind = KindDecode
	}
	return le
}

// IsRetryable returns true if the error is likely transient and worth retrying.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}
	return isTransport(err) || errors.Is(err, ErrUnavailable) || errors.Is(err, ErrRateLimit)
}

// TransportError marks a failure to reach the upstream at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

func isTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

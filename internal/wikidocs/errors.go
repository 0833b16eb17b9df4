package wikidocs

import (
	"errors"
	"fmt"
)

// ErrorKind classifies API failures for callers that need to branch on them.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "not_found"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindUnauthorized   ErrorKind = "unauthorized"
	KindRemote         ErrorKind = "remote_error"
)

// APIError is a structured error from the Wikidocs API. Remote failures are
// always reported as values, never as panics.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("wikidocs api: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("wikidocs api: %s: %s", e.Kind, e.Message)
}

// IsNotFound reports whether err is an APIError for a missing resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case 404:
		return KindNotFound
	case 422:
		return KindInvalidRequest
	case 401, 403:
		return KindUnauthorized
	default:
		return KindRemote
	}
}

// Package adapter provides implementations for external AI provider integrations.
package adapter

import (
	"errors"
	"fmt"
)

// ErrEmptyHistory is returned when an adapter is called without a user message.
var ErrEmptyHistory = errors.New("conversation history contains no user message")

// APIError represents a transport or authentication failure: a network error,
// bad credentials, or a non-2xx response from the backend.
type APIError struct {
	Provider   string // Provider identifier (openai, gemini, ...)
	StatusCode int    // HTTP status code, 0 for transport-level failures
	Message    string // Vendor error message when one could be parsed
	Err        error  // Underlying error, if any
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("%s API error [%d]: %s", e.Provider, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s API error [%d]", e.Provider, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s request failed", e.Provider)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// MalformedResponseError represents a 2xx vendor response whose payload is
// missing the fields the adapter expects. It is a distinct error kind so
// callers can tell a broken payload apart from a transport failure.
type MalformedResponseError struct {
	Provider string // Provider identifier
	Reason   string // Which expected field was missing or empty
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s returned a malformed response: %s", e.Provider, e.Reason)
}

// IsAPIError checks if an error is an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsMalformedResponse checks if an error is a MalformedResponseError.
func IsMalformedResponse(err error) bool {
	var malformed *MalformedResponseError
	return errors.As(err, &malformed)
}

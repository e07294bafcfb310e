package larder

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Sentinel errors for specific client conditions.
var (
	ErrMissingToken = errors.New("missing API token")
	ErrMissingID    = errors.New("record has no ID")
	ErrUnauthorized = errors.New("unauthorized: invalid or missing API token")
	ErrNotFound     = errors.New("record not found")
)

// ConfigurationError is returned when the client or a record is not in a
// state that allows a request to be issued. No request is made.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("larder %s: configuration error: %v", e.Op, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// TransportError wraps network-level failures (timeouts, refused connections,
// cancelled contexts) that happen before a response is received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("larder %s %s: transport error: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError represents a non-2xx response from the API with status code and response body.
//
// NOTE: The raw body is kept instead of a parsed error document because Larder
// answers with either a JSON {"detail": ...} object or an HTML error page
// depending on which layer rejected the request.
type RemoteError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface for RemoteError.
func (e RemoteError) Error() string {
	return fmt.Sprintf("larder API error (HTTP %d): %s", e.StatusCode, e.Body)
}

// Is lets callers match common statuses with errors.Is.
func (e RemoteError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// IsClientError returns true for 4xx HTTP status codes.
func (e RemoteError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// readRemoteError reads the response body and returns a RemoteError.
func readRemoteError(resp *http.Response) RemoteError {
	body, readErr := io.ReadAll(resp.Body)
	bodyStr := string(body)
	if readErr != nil {
		bodyStr += fmt.Sprintf(" (body read error: %v)", readErr)
	}
	return RemoteError{StatusCode: resp.StatusCode, Body: bodyStr}
}

// DeserializationError is returned when a response body or one of its
// fields does not have the expected shape.
type DeserializationError struct {
	Source string // URL or field name
	Err    error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("larder: decoding %s: %v", e.Source, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

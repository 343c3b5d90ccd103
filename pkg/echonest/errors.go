package echonest

import (
	"errors"
	"fmt"
)

// Error represents an EchoNest API error.
//
// It is returned when the HTTP round trip succeeded but the envelope's
// status code is non-zero. Message is the remote status message,
// unmodified.
type Error struct {
	Code    int    // EchoNest status code
	Message string // Status message from EchoNest
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("echonest: error %d: %s", e.Code, e.Message)
}

// Is checks if the target error is an EchoNest error with the same code.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Temporary returns true if the error is temporary and the request
// could succeed if repeated later. The client itself never retries.
func (e *Error) Temporary() bool {
	return e.Code == ErrCodeRateLimitExceeded
}

// EchoNest status codes.
const (
	ErrCodeSuccess           = 0
	ErrCodeInvalidAPIKey     = 1
	ErrCodeKeyNotAllowed     = 2
	ErrCodeRateLimitExceeded = 3
	ErrCodeMissingParameter  = 4
	ErrCodeInvalidParameter  = 5
)

// Predefined errors for common cases.
var (
	// ErrMissingRequiredOption is returned, before any request is sent,
	// when an operation needs an option (such as a genre name) that was
	// neither configured nor passed explicitly.
	ErrMissingRequiredOption = errors.New("echonest: missing required option")

	// ErrMalformedResponse is returned when a successful envelope lacks
	// the expected result field.
	ErrMalformedResponse = errors.New("echonest: malformed response")

	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("echonest: invalid configuration")
)

// MissingOptionError describes which option an operation required.
type MissingOptionError struct {
	Resource string // Resource name, e.g. "genre"
	Option   string // Option key, e.g. "name"
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("echonest: this operation requires a %s %s; call SetName() first or pass %q explicitly",
		e.Resource, e.Option, e.Option)
}

// Is reports whether target is ErrMissingRequiredOption.
func (e *MissingOptionError) Is(target error) bool {
	return target == ErrMissingRequiredOption
}

// MalformedResponseError is returned when an envelope does not contain
// the requested result field, or the field is not a list of records.
type MalformedResponseError struct {
	Field string
	Err   error // Decode error, if the field was present but unreadable
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("echonest: malformed response field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("echonest: response has no %q field", e.Field)
}

// Is reports whether target is ErrMalformedResponse.
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// TransportError wraps a failure of the underlying HTTP client
// (DNS, connection, timeout, cancellation). The original error is
// available through errors.Unwrap and errors.As.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("echonest: request %s failed: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError is returned when the server answers with a non-2xx status
// and a body that is not an API envelope.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("echonest: http %d: %s", e.StatusCode, e.Body)
}

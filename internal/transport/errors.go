// Package transport reads and writes Content-Length framed JSON-RPC messages
// over a byte-stream pair. This file defines the structured error types used
// within the transport layer, providing categorized error information beyond
// standard Go errors.
package transport

// file: internal/transport/errors.go

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
)

// ErrorCode defines specific numeric codes for transport-layer errors.
type ErrorCode int

// Defined error codes for the transport layer.
const (
	// ErrGeneric represents a general or unspecified transport error.
	ErrGeneric ErrorCode = iota + 1000
	// ErrFrameSkipped indicates a header block carried no usable
	// Content-Length and the frame was discarded without a response.
	ErrFrameSkipped
	// ErrTransportClosed indicates the input stream ended, or an operation
	// was attempted on a closed transport.
	ErrTransportClosed
	// ErrReadFailed indicates the underlying input stream failed mid-read.
	ErrReadFailed
	// ErrWriteFailed indicates the underlying output stream failed mid-write.
	ErrWriteFailed
)

// ErrorType categorizes transport errors for higher-level handling.
type ErrorType int

// Defined error types for transport errors.
const (
	// ErrorTypeGeneric represents a general or unspecified transport error.
	ErrorTypeGeneric ErrorType = iota
	// ErrorTypeSkip indicates a discarded frame; the caller should read again.
	ErrorTypeSkip
	// ErrorTypeClosed indicates end-of-stream or a closed transport.
	ErrorTypeClosed
	// ErrorTypeIO indicates a failure of the underlying byte stream.
	ErrorTypeIO
)

// Error represents a transport-level error with a type, code, underlying
// cause, and optional context for diagnostics.
type Error struct {
	Type    ErrorType
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the standard Go error interface.
func (e *Error) Error() string {
	base := fmt.Sprintf("TransportError [%d] %s", e.Code, e.Message)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

// Unwrap returns the underlying cause, allowing errors.Is/As inspection.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds a key-value pair to the error's context map.
// Returns the modified error pointer for chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Is implements error comparison for errors.Is: two transport errors match
// when their Type and Code agree.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// NewError creates a transport error with a generic type. The cause is
// wrapped with a stack trace.
func NewError(code ErrorCode, message string, cause error) *Error {
	var wrappedCause error
	if cause != nil {
		wrappedCause = errors.WithStack(cause)
	}
	return &Error{
		Type:    ErrorTypeGeneric,
		Code:    code,
		Message: message,
		Cause:   wrappedCause,
	}
}

// NewSkipError creates the error returned when a frame's header block is
// missing a usable Content-Length. The reason names the defect (absent,
// zero, negative, or non-numeric).
func NewSkipError(reason string) *Error {
	err := NewError(ErrFrameSkipped, "frame skipped: "+reason, nil)
	err.Type = ErrorTypeSkip
	return err
}

// NewClosedError creates the error for end-of-stream and for operations
// attempted on a closed transport.
func NewClosedError(operation string) *Error {
	err := NewError(ErrTransportClosed, fmt.Sprintf("cannot perform %s on closed transport", operation), nil)
	err.Type = ErrorTypeClosed
	err = err.WithContext("operation", operation)
	return err
}

// NewIOError creates the error for a failed read or write on the underlying
// byte stream.
func NewIOError(operation string, cause error) *Error {
	code := ErrReadFailed
	if operation == "write" {
		code = ErrWriteFailed
	}
	err := NewError(code, fmt.Sprintf("%s on underlying stream failed", operation), cause)
	err.Type = ErrorTypeIO
	err = err.WithContext("operation", operation)
	return err
}

// IsSkipError reports whether err marks a discarded frame; the caller should
// simply issue another read.
func IsSkipError(err error) bool {
	var transportErr *Error
	if errors.As(err, &transportErr) {
		return transportErr.Type == ErrorTypeSkip
	}
	return false
}

// IsClosedError reports whether err (or its cause chain) signifies a closed
// transport or end-of-stream condition.
func IsClosedError(err error) bool {
	var transportErr *Error
	if errors.As(err, &transportErr) {
		return transportErr.Type == ErrorTypeClosed
	}
	return errors.Is(err, io.EOF)
}

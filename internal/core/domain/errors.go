// Package domain defines the core domain types for MeterMesh.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a metrics domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "MM-REG-4090")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Registry Errors (REG)
// ============================================================================

var (
	// ErrMetricName indicates an empty or malformed metric name.
	ErrMetricName = NewDomainError("MM-REG-4000", "invalid metric name")

	// ErrBuckets indicates malformed histogram bucket boundaries.
	ErrBuckets = NewDomainError("MM-REG-4001", "malformed bucket boundaries")

	// ErrKind indicates an unknown metric kind.
	ErrKind = NewDomainError("MM-REG-4002", "unknown metric kind")

	// ErrKindConflict indicates a metric name already exists with a different kind.
	ErrKindConflict = NewDomainError("MM-REG-4090", "metric kind conflict")

	// ErrLabelConflict indicates a family already exists with different label keys.
	ErrLabelConflict = NewDomainError("MM-REG-4091", "metric label key conflict")
)

// ============================================================================
// Exposer Errors (EXPO)
// ============================================================================

var (
	// ErrEndpointBind indicates the exposition endpoint could not be bound.
	ErrEndpointBind = NewDomainError("MM-EXPO-5000", "endpoint bind failed")

	// ErrPublishConflict indicates a handle is already published under the name.
	ErrPublishConflict = NewDomainError("MM-EXPO-4090", "exposer already published under name")

	// ErrExposerMissing indicates no handle is published under the name.
	ErrExposerMissing = NewDomainError("MM-EXPO-4040", "no exposer published under name")

	// ErrExposerClosed indicates the handle has been closed.
	ErrExposerClosed = NewDomainError("MM-EXPO-4100", "exposer closed")
)

// ============================================================================
// Operation Errors (OP)
// ============================================================================

var (
	// ErrNotBound indicates an operation was invoked before binding.
	ErrNotBound = NewDomainError("MM-OP-4003", "operation not bound")

	// ErrNegativeDelta indicates a negative counter increment was rejected.
	ErrNegativeDelta = NewDomainError("MM-OP-4002", "negative counter delta")

	// ErrLabelPair indicates a label value was configured without a label key.
	ErrLabelPair = NewDomainError("MM-OP-4004", "label value without label key")

	// ErrAlreadyBound indicates Bind was called on a bound operation.
	ErrAlreadyBound = NewDomainError("MM-OP-4005", "operation already bound")
)

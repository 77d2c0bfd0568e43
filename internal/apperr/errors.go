package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary
type Kind string

const (
	// KindValidation means the caller supplied bad input
	KindValidation Kind = "validation"
	// KindNotFound means a referenced entity is absent
	KindNotFound Kind = "not_found"
	// KindUpstream means the external source failed or rejected the call
	KindUpstream Kind = "upstream"
	// KindStorage means the local store failed
	KindStorage Kind = "storage"
)

// Error is a classified application error
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a validation error
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound creates a not-found error
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Upstream wraps an external source failure
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// Storage wraps a local store failure
func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// KindOf extracts the classification from an error chain.
// Unclassified errors are treated as storage failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// MessageOf returns the human-readable message from an error chain
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

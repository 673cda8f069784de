// Package errors provides structured errors with stable codes for zzk.
//
// Every failure that reaches the command layer carries an ErrorCode so that the
// CLI can report it uniformly and tests can assert on the kind of failure
// without matching message text:
//
//	err := errors.Wrap(errors.ErrCodeNotFound, "node does not exist", zk.ErrNoNode)
//	if errors.IsCode(err, errors.ErrCodeNotFound) {
//	    ...
//	}
//
// StructuredError implements Unwrap, so errors.Is and errors.As from the
// standard library keep working against the wrapped cause.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode identifies the kind of failure.
type ErrorCode string

const (
	// ErrCodeConnection means no server could be reached within the timeout.
	ErrCodeConnection ErrorCode = "CONNECTION"
	// ErrCodeNotFound means the addressed node does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeVersionConflict means a conditional write lost a race.
	ErrCodeVersionConflict ErrorCode = "VERSION_CONFLICT"
	// ErrCodeHydration wraps a per-path failure while fetching list values.
	ErrCodeHydration ErrorCode = "HYDRATION"
	// ErrCodeProbe wraps a per-address failure during role discovery.
	ErrCodeProbe ErrorCode = "PROBE"
	// ErrCodeInvalidRequest means the caller supplied bad input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeTimeout means the operation ran out of time.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal is used for everything else.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError is an error with a code, a human readable message,
// an optional cause and optional context attributes.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error renders "<message>: <cause>" so that the CLI line reads naturally.
func (e *StructuredError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// Attrs returns the context as sorted key/value pairs, ready for slog.
func (e *StructuredError) Attrs() []any {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, 2*len(keys)+2)
	attrs = append(attrs, "code", string(e.Code))
	for _, k := range keys {
		attrs = append(attrs, k, e.Context[k])
	}
	return attrs
}

// New creates a StructuredError without a cause.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// Wrap creates a StructuredError around cause.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause}
}

// WrapWithContext creates a StructuredError around cause with context attributes.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, Context: context}
}

// CodeOf returns the code of the outermost StructuredError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether any StructuredError in err's tree has the given code.
func IsCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	if se, ok := err.(*StructuredError); ok && se.Code == code {
		return true
	}
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return IsCode(u.Unwrap(), code)
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if IsCode(e, code) {
				return true
			}
		}
	}
	return false
}

// Join combines errors the way errors.Join does, but renders them on a
// single line separated by "; " so they fit the CLI error line.
func Join(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	if len(nonNil) == 0 {
		return nil
	}
	return &joinError{errs: nonNil}
}

type joinError struct {
	errs []error
}

func (e *joinError) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e *joinError) Unwrap() []error {
	return e.errs
}

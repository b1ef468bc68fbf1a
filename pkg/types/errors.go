package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures tms reports to the operator.
type ErrorKind string

const (
	// KindConfigSyntax is a malformed configuration line outside any group.
	KindConfigSyntax ErrorKind = "config-syntax"
	// KindConfigValue is an unusable configuration value (log level,
	// web document entry, port, environment reference).
	KindConfigValue ErrorKind = "config-value"
	// KindEnvironment is a missing or invalid java home, server home,
	// cache directory or required executable.
	KindEnvironment ErrorKind = "environment"
	// KindResourceMissing is an unknown web document or a missing artifact.
	KindResourceMissing ErrorKind = "resource-missing"
	// KindIO is a failed directory creation, copy, removal or write.
	KindIO ErrorKind = "io"
)

// Error is a classified tms error. Message names the project, path or key
// involved; Err is the underlying cause, if any.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a classified error.
func NewError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// NewConfigSyntaxError reports a malformed configuration line.
func NewConfigSyntaxError(format string, args ...interface{}) *Error {
	return NewError(KindConfigSyntax, nil, format, args...)
}

// NewConfigValueError reports an unusable configuration value.
func NewConfigValueError(format string, args ...interface{}) *Error {
	return NewError(KindConfigValue, nil, format, args...)
}

// NewEnvironmentError reports an invalid runtime environment.
func NewEnvironmentError(format string, args ...interface{}) *Error {
	return NewError(KindEnvironment, nil, format, args...)
}

// NewResourceMissingError reports an unknown document or missing artifact.
func NewResourceMissingError(format string, args ...interface{}) *Error {
	return NewError(KindResourceMissing, nil, format, args...)
}

// WrapIOError classifies a filesystem failure.
func WrapIOError(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return NewError(KindIO, err, format, args...)
}

// IsKind reports whether any error in err's chain is a tms error of kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first tms error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Package errors provides structured error types and exit codes for numdoc.
package errors

import (
	"fmt"
)

// Exit codes returned by the numdoc CLI.
const (
	ExitSuccess     = 0 // Success, all examples passed
	ExitFailure     = 1 // Runtime error or at least one failing example
	ExitConfigError = 2 // Configuration error (invalid config, bad flags, etc.)
	ExitEnvError    = 3 // Environment error (missing resource file, unreadable package, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindValidation
	KindDiscovery
	KindFailure
	KindException
	KindEnvironment
)

// NumdocError is the base error type for numdoc.
type NumdocError struct {
	Kind    ErrorKind
	Message string
	Test    string // Test-group name if applicable
	Cause   error  // Underlying error
}

func (e *NumdocError) Error() string {
	if e.Test != "" {
		return fmt.Sprintf("[%s] %s", e.Test, e.Message)
	}
	return e.Message
}

func (e *NumdocError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *NumdocError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvError
	default:
		return ExitFailure
	}
}

// New creates a new runtime error.
func New(message string) *NumdocError {
	return &NumdocError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *NumdocError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *NumdocError {
	return &NumdocError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *NumdocError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *NumdocError {
	return &NumdocError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *NumdocError {
	return Environment(fmt.Sprintf(format, args...))
}

// Discovery creates an error for a declared-but-unresolvable public name.
// This signals a documentation/export mismatch and is never silently dropped.
func Discovery(message string) *NumdocError {
	return &NumdocError{
		Kind:    KindDiscovery,
		Message: message,
	}
}

// Discoveryf creates a discovery error with formatting.
func Discoveryf(format string, args ...interface{}) *NumdocError {
	return Discovery(fmt.Sprintf(format, args...))
}

// Failure creates an error for an example whose output did not match.
// Used by the fail-fast runner to short-circuit with full context attached.
func Failure(test, message string) *NumdocError {
	return &NumdocError{
		Kind:    KindFailure,
		Test:    test,
		Message: message,
	}
}

// Exception creates an error for an example whose source raised unexpectedly.
func Exception(test, message string, cause error) *NumdocError {
	return &NumdocError{
		Kind:    KindException,
		Test:    test,
		Message: message,
		Cause:   cause,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *NumdocError {
	return &NumdocError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *NumdocError {
	return &NumdocError{
		Kind:    KindDiscovery,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// IsKind reports whether err is a NumdocError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	ne, ok := err.(*NumdocError)
	return ok && ne.Kind == kind
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if ne, ok := err.(*NumdocError); ok {
		return ne.ExitCode()
	}
	return ExitFailure
}

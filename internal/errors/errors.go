package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/bujo/internal/logger"
)

var (
	// ErrNotAuthenticated is returned when no session user can be resolved
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidInput is returned when an enum or date argument is malformed
	ErrInvalidInput = errors.New("invalid input")
)

// QueryError wraps a failed read, insert or delete against the store.
// The store's message is exposed verbatim after the operation name.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Query wraps err as a QueryError for op. A nil err stays nil.
func Query(op string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Op: op, Err: err}
}

// Invalidf returns an ErrInvalidInput carrying a formatted detail message
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsQueryError reports whether err carries a QueryError
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNotAuthenticated) {
		return fmt.Sprintf("Error: %v (run 'bujo login' first)", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

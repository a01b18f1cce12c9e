// Package validation compiles LaTeX reports and checks generated PDF reports.
package validation

import "fmt"

// Error represents a general report validation error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CompilationError represents a LaTeX compilation failure
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// PageCountError reports a PDF whose page count differs from the expected layout
type PageCountError struct {
	Path     string
	Expected int
	Actual   int
}

func (e *PageCountError) Error() string {
	return fmt.Sprintf("report %s has %d page(s), expected %d", e.Path, e.Actual, e.Expected)
}

package types

import (
	"errors"
	"fmt"
)

// Error kind sentinels. The typed errors below wrap these so callers can
// branch with errors.Is without keeping a reference to the concrete type.
var (
	ErrParse    = errors.New("document parse error")
	ErrNotFound = errors.New("document not found")
	ErrInvalid  = errors.New("validation error")
)

// ParseError reports malformed or unexpectedly shaped XML. Source carries
// the file path or document identifier the failure originated from, so
// batch walks can log exactly which document was skipped.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports kind equality against ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// NotFoundError reports a referenced document file that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.Path)
}

// Is reports kind equality against ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError reports a rejected mutation, such as an empty note text
// or an out-of-range note index.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is reports kind equality against ErrInvalid.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

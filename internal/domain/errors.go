package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrParse      = errors.New("malformed line")
	ErrValidation = errors.New("validation failed")
	ErrIO         = errors.New("file write failed")

	ErrDuplicate       = fmt.Errorf("%w: duplicate word", ErrValidation)
	ErrCollision       = fmt.Errorf("%w: word already exists in another entry", ErrValidation)
	ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrValidation)
	ErrReadOnly        = fmt.Errorf("%w: file is managed through favorites", ErrValidation)
)

// ParseError describes a line that could not be decoded
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// ValidationError describes rejected user input
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

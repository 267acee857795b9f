package casetable

import (
	"errors"
	"fmt"
)

// Sentinel errors for the casetable package.
var (
	// ErrParse is returned when a case resource is missing or malformed.
	ErrParse = errors.New("casetable: parse failed")

	// ErrIndexOutOfRange is returned when a row or column reference falls outside the table.
	ErrIndexOutOfRange = errors.New("casetable: index out of range")
)

// ParseError describes why a case resource could not be loaded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse case table: %v", e.Err)
	}
	return fmt.Sprintf("parse case table %s: %v", e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// IndexError reports a cell reference outside the table bounds.
type IndexError struct {
	Row, Column int
	Rows, Width int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("cell (%d,%d) outside table of %d rows x %d columns", e.Row, e.Column, e.Rows, e.Width)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

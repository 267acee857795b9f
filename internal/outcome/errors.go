// Package outcome classifies operation errors and renders them into the
// strings recorded in case tables.
package outcome

import (
	"errors"
	"fmt"
)

// Sentinel errors for the outcome package.
var (
	// ErrCoercion marks a case field that could not be converted to its scalar type.
	ErrCoercion = errors.New("outcome: coercion failed")

	// ErrConstraint marks a persistence constraint violation.
	ErrConstraint = errors.New("outcome: constraint violated")
)

// Kind is the category of an operation outcome.
type Kind int

const (
	KindNone Kind = iota
	KindCoercion
	KindConstraint
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCoercion:
		return "coercion"
	case KindConstraint:
		return "constraint"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// CoercionError reports a case field whose text could not be parsed.
// Its message mirrors the wording recorded in existing case tables.
type CoercionError struct {
	Field string
	Value string
	// Layout is set for time fields.
	Layout string
	Err    error
}

func (e *CoercionError) Error() string {
	if e.Layout != "" {
		return fmt.Sprintf("Text '%s' could not be parsed with pattern %s", e.Value, e.Layout)
	}
	return fmt.Sprintf("For input string: \"%s\"", e.Value)
}

func (e *CoercionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCoercion}
	}
	return []error{ErrCoercion, e.Err}
}

// ConstraintError wraps a driver error raised by a violated database constraint.
type ConstraintError struct {
	// Code is the driver-specific error number.
	Code int
	Err  error
}

func (e *ConstraintError) Error() string {
	return e.Err.Error()
}

func (e *ConstraintError) Unwrap() []error {
	return []error{ErrConstraint, e.Err}
}

// Classify returns the category of err.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var coercion *CoercionError
	if errors.As(err, &coercion) {
		return KindCoercion
	}
	var constraint *ConstraintError
	if errors.As(err, &constraint) {
		return KindConstraint
	}
	return KindOther
}

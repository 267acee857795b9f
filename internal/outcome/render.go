package outcome

import "errors"

// Character windows kept from error messages. Recorded expectations depend
// on these exact offsets.
const (
	coercionEnd     = 20
	constraintStart = 6
	constraintEnd   = 30
)

// Outcome is the normalized result of one operation call.
type Outcome struct {
	Kind   Kind
	Output string
	Err    error
}

// New builds the outcome for an operation that returned err.
func New(success string, err error) Outcome {
	return Outcome{
		Kind:   Classify(err),
		Output: Render(success, err),
		Err:    err,
	}
}

// Render converts an operation result into its recorded string form:
// the success sentinel, the first 20 characters of a coercion message,
// characters 6..30 of a constraint message, or the full message otherwise.
func Render(success string, err error) string {
	if err == nil {
		return success
	}
	var coercion *CoercionError
	if errors.As(err, &coercion) {
		return substring(coercion.Error(), 0, coercionEnd)
	}
	var constraint *ConstraintError
	if errors.As(err, &constraint) {
		return substring(constraint.Error(), constraintStart, constraintEnd)
	}
	return err.Error()
}

// substring slices s by rune index, clamping both bounds to its length.
func substring(s string, start, end int) string {
	runes := []rune(s)
	if start > len(runes) {
		start = len(runes)
	}
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}

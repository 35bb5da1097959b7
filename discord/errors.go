package discord

import (
	"fmt"
	"strings"
)

// MissingFieldError reports a required field that was never supplied.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// RangeError reports a numeric field outside its inclusive bounds.
type RangeError struct {
	Field string
	Value int64
	Min   int64
	Max   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("field %q must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// TypeMismatchError reports a ScalarValue (or JSON value) of the wrong kind.
type TypeMismatchError struct {
	Field    string
	Expected []ScalarKind
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	want := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		want[i] = k.String()
	}
	if e.Field == "" {
		return fmt.Sprintf("expected %s, got %s", strings.Join(want, " or "), e.Actual)
	}
	return fmt.Sprintf("field %q: expected %s, got %s", e.Field, strings.Join(want, " or "), e.Actual)
}

// UnknownDiscriminantError reports a "type" value outside the table for its
// category. It is distinct from PayloadMalformedError so callers can
// acknowledge kinds introduced by the platform after this module was built.
type UnknownDiscriminantError struct {
	Category string
	Value    int64
}

func (e *UnknownDiscriminantError) Error() string {
	return fmt.Sprintf("unknown %s discriminant %d", e.Category, e.Value)
}

// PayloadMissingError reports a variant that requires a payload but arrived
// without one.
type PayloadMissingError struct {
	Type InteractionType
}

func (e *PayloadMissingError) Error() string {
	return fmt.Sprintf("%s interaction is missing its data payload", e.Type)
}

// PayloadMalformedError wraps the structural decode failure of a known
// variant's payload or envelope fields.
type PayloadMalformedError struct {
	Type InteractionType
	Err  error
}

func (e *PayloadMalformedError) Error() string {
	return fmt.Sprintf("malformed %s payload: %v", e.Type, e.Err)
}

func (e *PayloadMalformedError) Unwrap() error { return e.Err }

// ValueTooLongError reports a string longer than its character limit.
type ValueTooLongError struct {
	Field string
	Max   int
}

func (e *ValueTooLongError) Error() string {
	return fmt.Sprintf("field %q cannot be longer than %d characters", e.Field, e.Max)
}

/*
errors.go - Centralized error types for units of time and reporting periods

PURPOSE:
  Every failure in this package is classified by one of the sentinel errors
  below. Structured errors carry the offending input and unwrap to their
  sentinel, so callers branch with errors.Is and inspect with errors.As.

ERROR CATEGORIES:
  1. Parse errors - blank input, unknown prefix, token count, bad field
  2. Type errors - mismatched variant or kind, incompatible requested type
  3. Operation errors - unsupported arithmetic, ordering, range violations
  4. Store errors - catalog lookups and uniqueness

USAGE:
  _, err := timeunit.ParseSortable[timeunit.CalendarDay]("cd-2015-02-29")
  if errors.Is(err, timeunit.ErrMalformedField) {
      // reject the request
  }

SEE ALSO:
  - codec.go: Raises parse errors
  - period.go: Raises ordering and mismatch errors
*/
package timeunit

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrBlankInput is returned when an empty or whitespace-only string is parsed.
	ErrBlankInput = errors.New("input is blank")

	// ErrUnrecognizedFormat is returned when input does not start with a known
	// kind/granularity prefix or period wrapper.
	ErrUnrecognizedFormat = errors.New("unrecognized format")

	// ErrWrongTokenCount is returned when the number of delimited tokens does
	// not match what the detected prefix requires.
	ErrWrongTokenCount = errors.New("wrong token count")

	// ErrMalformedField is returned when a numeric field violates its width,
	// range or calendar constraint.
	ErrMalformedField = errors.New("malformed field")

	// ErrTypeMismatch is returned when two units or periods are different
	// concrete variants.
	ErrTypeMismatch = errors.New("mismatched concrete type")

	// ErrKindMismatch is returned when the ends of a period straddle two kinds
	// across an unbounded boundary.
	ErrKindMismatch = errors.New("mismatched kind")

	// ErrStartAfterEnd is returned when a bounded period starts after it ends.
	ErrStartAfterEnd = errors.New("start is after end")

	// ErrIncompatibleType is returned when a decoded value cannot be assigned
	// to the type the caller asked for.
	ErrIncompatibleType = errors.New("incompatible requested type")

	// ErrUnsupported is returned for operations that have no meaning for the
	// operand, such as stepping an unbounded unit.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrOutOfRange is returned for a non-positive permutation cap or when
	// arithmetic leaves the representable years.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidArgument is returned for nil units and invalid enum arguments.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a named period does not exist.
	ErrNotFound = errors.New("named period not found")

	// ErrDuplicateName is returned when a named period's name is taken.
	ErrDuplicateName = errors.New("duplicate period name")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ParseError describes why a textual unit or period was rejected.
type ParseError struct {
	Input  string
	Reason string
	Err    error // one of the sentinel errors above
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("parse %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("parse %q: %v: %s", e.Input, e.Err, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErr(input string, sentinel error, format string, args ...any) error {
	return &ParseError{Input: input, Reason: fmt.Sprintf(format, args...), Err: sentinel}
}

// FieldError reports a field that fails validation when a unit is built.
type FieldError struct {
	Field string
	Value int
	Limit string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s %d must be %s", ErrMalformedField, e.Field, e.Value, e.Limit)
}

func (e *FieldError) Unwrap() error {
	return ErrMalformedField
}

// MismatchError reports two operands that are not the same concrete variant.
type MismatchError struct {
	Left  string
	Right string
	Err   error // ErrTypeMismatch or ErrKindMismatch
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: %s vs %s", e.Err, e.Left, e.Right)
}

func (e *MismatchError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsParseError returns true if the error came from rejecting textual input.
func IsParseError(err error) bool {
	return errors.Is(err, ErrBlankInput) ||
		errors.Is(err, ErrUnrecognizedFormat) ||
		errors.Is(err, ErrWrongTokenCount) ||
		errors.Is(err, ErrMalformedField)
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return IsParseError(err) ||
		errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrKindMismatch) ||
		errors.Is(err, ErrStartAfterEnd) ||
		errors.Is(err, ErrIncompatibleType) ||
		errors.Is(err, ErrUnsupported) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrInvalidArgument)
}

package scalarval

import (
	"fmt"

	"github.com/pkg/errors"
)

// OutOfRangeFlag distinguishes overflow from underflow in a
// NumericOutOfRange error; index-building code relies on telling them
// apart.
type OutOfRangeFlag uint8

const (
	FlagOverflow OutOfRangeFlag = 1 << iota
	FlagUnderflow
)

func (f OutOfRangeFlag) String() string {
	switch f {
	case FlagOverflow:
		return "overflow"
	case FlagUnderflow:
		return "underflow"
	default:
		return "unknown"
	}
}

// TypeMismatchError reports that no promotion or cast exists between two
// Kinds.
type TypeMismatchError struct {
	From, To Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: cannot operate on %s and %s", e.From, e.To)
}

// NewTypeMismatch builds a TypeMismatchError.
func NewTypeMismatch(from, to Kind) error {
	return &TypeMismatchError{From: from, To: to}
}

// NumericOutOfRangeError reports a value that does not fit in the
// destination Kind's range, or an arithmetic result that is not
// representable (NaN/Inf for doubles, carry-out for integers/decimals).
type NumericOutOfRangeError struct {
	Value    string
	From, To Kind
	Flags    OutOfRangeFlag
}

func (e *NumericOutOfRangeError) Error() string {
	return fmt.Sprintf("numeric out of range: %s (%s -> %s, %s)", e.Value, e.From, e.To, e.Flags)
}

// NewNumericOutOfRange builds a NumericOutOfRangeError.
func NewNumericOutOfRange(value string, from, to Kind, flags OutOfRangeFlag) error {
	return &NumericOutOfRangeError{Value: value, From: from, To: to, Flags: flags}
}

// ObjectTooLargeError reports a variable-length write that exceeds the
// destination column's declared maximum.
type ObjectTooLargeError struct {
	Actual, Max int
	Kind        Kind
}

func (e *ObjectTooLargeError) Error() string {
	return fmt.Sprintf("object too large: size %d exceeds max %d for %s", e.Actual, e.Max, e.Kind)
}

// NewObjectTooLarge builds an ObjectTooLargeError.
func NewObjectTooLarge(actual, max int, kind Kind) error {
	return &ObjectTooLargeError{Actual: actual, Max: max, Kind: kind}
}

// DivisionByZeroError reports a decimal or integer division by zero.
type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string { return "division by zero" }

// NewDivisionByZero builds a DivisionByZeroError.
func NewDivisionByZero() error { return &DivisionByZeroError{} }

// InvalidFormatError reports a malformed textual representation that
// could not be parsed into the requested Kind.
type InvalidFormatError struct {
	Text string
	Kind Kind
	Err  error
}

func (e *InvalidFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid format for %s: %q: %v", e.Kind, e.Text, e.Err)
	}
	return fmt.Sprintf("invalid format for %s: %q", e.Kind, e.Text)
}

func (e *InvalidFormatError) Unwrap() error { return e.Err }

// NewInvalidFormat builds an InvalidFormatError, wrapping cause with a
// stack trace via pkg/errors when non-nil.
func NewInvalidFormat(text string, kind Kind, cause error) error {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &InvalidFormatError{Text: text, Kind: kind, Err: cause}
}

// UnsupportedOperationError reports an operation with no defined
// semantics in the current context (e.g. a feature-flagged conversion
// that is currently disabled, an unknown charset, or an Array in tuple
// storage). Casts the matrix rejects report TypeMismatchError instead.
type UnsupportedOperationError struct {
	Msg string
}

func (e *UnsupportedOperationError) Error() string { return e.Msg }

// NewUnsupportedOperation builds an UnsupportedOperationError.
func NewUnsupportedOperation(msg string) error {
	return &UnsupportedOperationError{Msg: msg}
}

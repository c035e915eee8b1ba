package budget

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFlags is returned when a decoded flag byte has a reserved bit set.
	ErrInvalidFlags = errors.New("invalid budget flags")
	// ErrCorruptEncoding is returned when positional input does not match its flags.
	ErrCorruptEncoding = errors.New("corrupt budget header encoding")
	// ErrMissingField is returned when keyed input has no flags field.
	ErrMissingField = errors.New("missing field")
	// ErrDuplicateField is returned when keyed input names a field twice.
	ErrDuplicateField = errors.New("duplicate field")
	// ErrUnknownField is returned when keyed input names a field that does not exist.
	ErrUnknownField = errors.New("unknown field")
	// ErrInconsistentFlags is returned when keyed input has a field without its flag
	// or a flag without its field.
	ErrInconsistentFlags = errors.New("budget flags disagree with fields")
	// ErrUnexpectedEnd is returned when input ends in the middle of a header.
	ErrUnexpectedEnd = errors.New("unexpected end of input")
	// ErrInvalidValue is returned when a keyed field holds a value of the wrong type or range.
	ErrInvalidValue = errors.New("invalid field value")
	// ErrDuplicateInstruction is returned when a parameter is set by two compute budget instructions.
	ErrDuplicateInstruction = errors.New("duplicate compute budget instruction")
	// ErrUnknownInstruction is returned for instruction data with an unknown tag.
	ErrUnknownInstruction = errors.New("unknown compute budget instruction")
)

// FieldError reports the field that was being decoded when decoding failed.
// Index is the position of the field in the header record: flags is 0 and
// parameters follow in canonical order.
type FieldError struct {
	Field string
	Index int
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %d (%s): %v", e.Index, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func flagsError(err error) *FieldError {
	return &FieldError{Field: flagsField, Index: 0, Err: err}
}

func fieldError(f Field, err error) *FieldError {
	return &FieldError{Field: f.Name(), Index: f.position(), Err: err}
}

package validation

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredField is returned when a parameter a calculator
	// cannot default is absent.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrUnrecognizedValue is returned for a categorical value outside the
	// closed set a field accepts.
	ErrUnrecognizedValue = errors.New("unrecognized value")

	// ErrOutOfRange is returned for numbers a formula cannot use, such as a
	// non-positive heart rate.
	ErrOutOfRange = errors.New("value out of range")
)

// FieldError ties a validation failure to the parameter that caused it.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v (got %v)", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Missing reports a required field that was not supplied.
func Missing(field string) *FieldError {
	return &FieldError{Field: field, Err: ErrMissingRequiredField}
}

// Unrecognized reports a categorical value outside the accepted set.
func Unrecognized(field string, value any) *FieldError {
	return &FieldError{Field: field, Value: value, Err: ErrUnrecognizedValue}
}

// OutOfRange reports a value the formula cannot use.
func OutOfRange(field string, value any) *FieldError {
	return &FieldError{Field: field, Value: value, Err: ErrOutOfRange}
}

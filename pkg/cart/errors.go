package cart

import (
	"errors"
	"fmt"
)

var (
	ErrSizeMismatch  = errors.New("cart: size mismatch")
	ErrBadTag        = errors.New("cart: bad tag")
	ErrFieldOverflow = errors.New("cart: field overflow")
	ErrInvalidRecord = errors.New("cart: invalid record")
)

// FieldError reports a value that does not fit its declared field width.
type FieldError struct {
	Field string
	Value any
	Limit string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("cart: field %s overflow: %v exceeds %s", e.Field, e.Value, e.Limit)
}

func (e *FieldError) Unwrap() error {
	return ErrFieldOverflow
}

func overflow(field string, value any, limit string) error {
	return &FieldError{Field: field, Value: value, Limit: limit}
}

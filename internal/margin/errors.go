package margin

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is matched by every error raised when a required request field has no value.
	ErrMissingField = errors.New("missing required field")

	// ErrSerialization is matched by every error raised when a portfolio object cannot be serialized.
	ErrSerialization = errors.New("portfolio serialization failed")
)

// MissingFieldError names the required field that was never supplied.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField.Error(), e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

func missingField(field string) error {
	return &MissingFieldError{Field: field}
}

// SerializationError reports the portfolio item that failed normalization.
type SerializationError struct {
	Index    int
	TypeName string
	Err      error
}

func (e *SerializationError) Error() string {
	if e.TypeName == "" {
		return fmt.Sprintf("%s: item %d: %v", ErrSerialization.Error(), e.Index, e.Err)
	}
	return fmt.Sprintf("%s: item %d (%s): %v", ErrSerialization.Error(), e.Index, e.TypeName, e.Err)
}

func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

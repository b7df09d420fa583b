package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail          = errors.New("email is required")
	ErrInvalidEmail        = errors.New("email is not a valid address")
	ErrEmailTooLong        = errors.New("email is too long")
	ErrEmptyPassword       = errors.New("password is required")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrPasswordTooLong     = errors.New("password is too long")
	ErrDisplayNameTooLong  = errors.New("display name is too long")
	ErrDisplayNameNotClean = errors.New("display name contains control characters")
)

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

package domain

import "errors"

var (
	ErrEmptyName               = errors.New("subscriber name is empty")
	ErrNameInvalidEncoding     = errors.New("subscriber name is not valid UTF-8")
	ErrNameTooLong             = errors.New("subscriber name is too long")
	ErrNameForbiddenCharacters = errors.New("subscriber name contains forbidden characters")
	ErrEmptyEmail              = errors.New("subscriber email is empty")
	ErrInvalidEmail            = errors.New("subscriber email is invalid")
	ErrEmailInvalidEncoding    = errors.New("subscriber email is not valid UTF-8")
)

const (
	FieldName  = "name"
	FieldEmail = "email"
)

// ValidationError reports which field failed a domain rule and why.
type ValidationError struct {
	Field  string
	Reason string
	cause  error
}

func newValidationError(field string, cause error, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, cause: cause}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// Package apperr classifies request failures as client or server errors.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnprocessable
)

// AppError carries a message that is safe to show to the caller. Err holds the
// internal cause and is only ever logged.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func BadRequest(message string) *AppError {
	return &AppError{Kind: KindBadRequest, Message: message}
}

func Unprocessable(message string, err error) *AppError {
	return &AppError{Kind: KindUnprocessable, Message: message, Err: err}
}

func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

const unknownErrorMessage = "Unknown error"

// StatusAndMessage resolves any error into the status code and client-facing
// message to respond with. Errors that are not *AppError never leak their text.
func StatusAndMessage(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode(), appErr.Message
	}
	return http.StatusInternalServerError, unknownErrorMessage
}

package models

import (
	"errors"
	"fmt"
)

// Error codes used across the download and conversion pipelines.
const (
	ErrCodeTransport    = "TRANSPORT_FAILED"
	ErrCodeAPI          = "API_ERROR"
	ErrCodeMalformed    = "MALFORMED_RESPONSE"
	ErrCodeRedirect     = "REDIRECT_PAGE"
	ErrCodeConversion   = "CONVERSION_FAILED"
	ErrCodeInvalidInput = "INVALID_INPUT"
)

// WikiError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type WikiError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *WikiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *WikiError) Unwrap() error {
	return e.Err
}

// NewWikiError creates a new WikiError.
func NewWikiError(code, message string, err error) *WikiError {
	return &WikiError{Code: code, Message: message, Err: err}
}

// HasCode reports whether err is (or wraps) a WikiError with the given code.
func HasCode(err error, code string) bool {
	var we *WikiError
	if errors.As(err, &we) {
		return we.Code == code
	}
	return false
}

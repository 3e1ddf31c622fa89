package common

import "errors"

type Code string

const (
	CodeValidation        Code = "validation"
	CodeUnauthorized      Code = "unauthorized"
	CodeForbidden         Code = "forbidden"
	CodeNotFound          Code = "not_found"
	CodeConflict          Code = "conflict"
	CodeInvalidTransition Code = "invalid_transition"
	CodeRateLimited       Code = "rate_limited"
	CodeInternal          Code = "internal"
)

type Error struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NewValidationError(message string, details map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Details: details}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf extracts the error code, defaulting to CodeInternal for untyped errors.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

package service

import "errors"

// Stable error codes carried on the wire in the error response body.
const (
	CodeEmptyFields       = "EMPTY_FIELDS"
	CodePasswordMismatch  = "PASSWORD_MISMATCH"
	CodeInvalidEmail      = "INVALID_EMAIL"
	CodeUsernameTaken     = "USERNAME_TAKEN"
	CodeEmailTaken        = "EMAIL_TAKEN"
	CodeLoginNotFound     = "USERNAME_OR_EMAIL_NOT_FOUND"
	CodeIncorrectPassword = "INCORRECT_PASSWORD"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInternalError     = "INTERNAL_ERROR"
)

// ErrUnauthenticated is returned when a bearer token fails verification or
// its principal no longer exists.
var ErrUnauthenticated = errors.New("unauthenticated")

// ValidationError carries a stable code and optional per-field details so
// handlers can render the uniform error schema without inspecting messages.
type ValidationError struct {
	Code    string
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

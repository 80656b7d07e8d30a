package accounts

import (
	"errors"
	"fmt"
)

// Account error kinds
const (
	ErrorKindConflict     = "conflict"
	ErrorKindUnauthorized = "unauthorized"
	ErrorKindNotFound     = "not_found"
	ErrorKindInternal     = "internal"
)

// AccountError represents errors related to account operations
type AccountError struct {
	Kind    string
	Message string
	Cause   error
}

func (e *AccountError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("account error [%s]: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("account error [%s]: %s", e.Kind, e.Message)
}

func (e *AccountError) Unwrap() error {
	return e.Cause
}

// NewConflictError creates an error for a duplicate username at creation
func NewConflictError() *AccountError {
	return &AccountError{
		Kind:    ErrorKindConflict,
		Message: "The username provided is not unique. Therefore, the user could not be created!",
	}
}

// NewUnauthorizedError creates an error for failed credential checks.
// The message deliberately does not reveal whether the username or the
// password was wrong.
func NewUnauthorizedError() *AccountError {
	return &AccountError{
		Kind:    ErrorKindUnauthorized,
		Message: "invalid username or password",
	}
}

// NewNotFoundError creates an error for an unknown user identifier
func NewNotFoundError(id int64) *AccountError {
	return &AccountError{
		Kind:    ErrorKindNotFound,
		Message: fmt.Sprintf("user with id %d not found", id),
	}
}

// NewInternalError wraps a store failure
func NewInternalError(message string, cause error) *AccountError {
	return &AccountError{
		Kind:    ErrorKindInternal,
		Message: message,
		Cause:   cause,
	}
}

func errorKindIs(err error, kind string) bool {
	var ae *AccountError
	return errors.As(err, &ae) && ae.Kind == kind
}

// IsConflict reports whether err is a duplicate-username conflict
func IsConflict(err error) bool { return errorKindIs(err, ErrorKindConflict) }

// IsUnauthorized reports whether err is a failed credential check
func IsUnauthorized(err error) bool { return errorKindIs(err, ErrorKindUnauthorized) }

// IsNotFound reports whether err is an unknown-identifier failure
func IsNotFound(err error) bool { return errorKindIs(err, ErrorKindNotFound) }

// Reason returns the human-readable message of an account error, or the
// plain error text for anything else.
func Reason(err error) string {
	var ae *AccountError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}

package service

import "fmt"

// ValidationError signals bad or out-of-state input from the caller.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// AuthorizationError signals a caller acting on a resource it does not own
// or with a role it does not have.
type AuthorizationError struct{ Msg string }

func (e *AuthorizationError) Error() string { return e.Msg }

// NotFoundError signals an unknown relato, categoria or user id.
type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func forbiddenf(format string, args ...any) error {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

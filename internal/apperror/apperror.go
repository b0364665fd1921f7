// Package apperror defines the application's error taxonomy.
//
// Store and service operations return typed errors instead of surfacing
// raw storage failures. Callers match with errors.Is against the sentinel
// values; the HTTP layer translates them to status codes in one place.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

type AppError struct {
	Err     error  // sentinel for errors.Is matching
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// UnknownUser is the failure for operations that reference a username with
// no user row. It is a NotFound variant so one errors.Is branch covers both.
func UnknownUser(username string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("no account exists for username %s", username),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// DuplicateUsername reports that an account with this username already
// exists. Raised from the storage layer's UNIQUE constraint, never from a
// pre-check, so two concurrent registrations can never both succeed.
func DuplicateUsername(username string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("username %s is already taken", username),
	}
}

// InvalidCredentials is returned uniformly whether the username is absent
// or the password is wrong — the message must not reveal which.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "invalid username or password",
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

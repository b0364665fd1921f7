package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("user", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "UnknownUser wraps ErrNotFound",
			err:       UnknownUser("alice"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "DuplicateUsername wraps ErrConflict",
			err:       DuplicateUsername("alice"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "InvalidCredentials wraps ErrInvalidCredentials",
			err:       InvalidCredentials(),
			target:    ErrInvalidCredentials,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("username", "username is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "UnknownUser does NOT match ErrConflict",
			err:       UnknownUser("alice"),
			target:    ErrConflict,
			wantMatch: false,
		},
		{
			name:      "InvalidCredentials does NOT match ErrNotFound",
			err:       InvalidCredentials(),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "UnknownUser message names the username",
			err:         UnknownUser("alice"),
			wantMessage: "no account exists for username alice",
		},
		{
			name:        "DuplicateUsername message names the username",
			err:         DuplicateUsername("alice"),
			wantMessage: "username alice is already taken",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("age", "age must be between 1 and 120"),
			wantMessage: "age must be between 1 and 120",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

// InvalidCredentials must read the same for an absent username and a wrong
// password — the message would otherwise leak which accounts exist.
func TestInvalidCredentialsUniformMessage(t *testing.T) {
	a := InvalidCredentials()
	b := InvalidCredentials()
	if a.Error() != b.Error() {
		t.Errorf("InvalidCredentials messages differ: %q vs %q", a.Error(), b.Error())
	}
}

func TestUnwrap(t *testing.T) {
	err := UnknownUser("alice")
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("bloodType", "invalid blood type")
	if err.Field != "bloodType" {
		t.Errorf("Field = %q, want %q", err.Field, "bloodType")
	}
}

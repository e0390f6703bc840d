package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("resource not found")
	ErrDatabaseError      = errors.New("database error")

	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of AI service")
	ErrVectorSearchFailed     = errors.New("vector search failed")
)

// PasswordPolicyError reports the first password rule a candidate failed.
type PasswordPolicyError struct {
	Rule string
}

func (e *PasswordPolicyError) Error() string {
	return fmt.Sprintf("Password is weak: %s", e.Rule)
}

func (e *PasswordPolicyError) Unwrap() error {
	return ErrInvalidInput
}

package models

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates an operation referenced a record id that does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError reports invalid input at the record store boundary.
// The record is rejected as a whole; no partial state is created.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthenticationError indicates a sign-in credential was rejected.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

package auth

import (
	"errors"
	"fmt"
)

// Credential chain steps recorded in AuthError.
const (
	StepLoad    = "load"
	StepRefresh = "refresh"
	StepFlow    = "flow"
	StepSave    = "save"
)

// AuthError represents a fatal credential failure. Any step of the credential
// chain that fails wraps its cause in an AuthError: there is no degraded mode,
// the run stops and the user has to fix credentials or re-authorize.
type AuthError struct {
	Step string // Credential chain step (load, refresh, flow, save)
	Err  error  // Underlying cause
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return fmt.Sprintf("authorization %s failed: %v", e.Step, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/errors.As chains.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError for the given credential chain step.
func NewAuthError(step string, err error) *AuthError {
	return &AuthError{
		Step: step,
		Err:  err,
	}
}

// IsAuthError reports whether err is or wraps an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

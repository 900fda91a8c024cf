package auth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthError_Error(t *testing.T) {
	err := NewAuthError(StepRefresh, errors.New("invalid_grant"))
	assert.Equal(t, "authorization refresh failed: invalid_grant", err.Error())
}

func TestAuthError_Unwrap(t *testing.T) {
	sentinel := errors.New("underlying cause")
	err := NewAuthError(StepFlow, fmt.Errorf("wrapping: %w", sentinel))

	assert.ErrorIs(t, err, sentinel)
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(NewAuthError(StepLoad, errors.New("boom"))))
	assert.True(t, IsAuthError(fmt.Errorf("outer: %w", NewAuthError(StepSave, errors.New("boom")))))
	assert.False(t, IsAuthError(errors.New("plain error")))
	assert.False(t, IsAuthError(nil))
}

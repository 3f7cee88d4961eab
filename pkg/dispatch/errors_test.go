package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewHandlerError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "handler_error")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsError(t *testing.T) {
	typed := NewAuthorizationError("denied")
	assert.Same(t, typed, AsError(typed))

	untyped := errors.New("something broke")
	converted := AsError(untyped)
	require.NotNil(t, converted)
	assert.Equal(t, CodeHandler, converted.Code)
	assert.ErrorIs(t, converted, untyped)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(nil))
	assert.Equal(t, CodeValidation, CodeOf(NewValidationError("bad")))
	assert.Equal(t, CodeNotFound, CodeOf(NewNotFoundError("missing")))
	assert.Equal(t, CodeTimeout, CodeOf(NewTimeoutError("slow", "expired")))
	assert.Equal(t, CodeHandler, CodeOf(errors.New("plain")))
}

func TestConstructors_Messages(t *testing.T) {
	assert.Contains(t, NewNotFoundError("foo").Message, "unknown tool: foo")
	assert.Contains(t, NewMisroutedError("bar").Message, "not executable on the server")
	assert.Contains(t, NewAuthorizationError("tool %s requires %s access", "x", "premium").Message, "premium")
}

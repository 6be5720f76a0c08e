package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewSchemaError("Infections is missing columns: Score")
	assert.Equal(t, "SCHEMA: Infections is missing columns: Score", err.Error())

	wrapped := NewExternalError("anthropic request failed", errors.New("dial tcp: timeout"))
	assert.Equal(t, "EXTERNAL: anthropic request failed: dial tcp: timeout", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewExternalError("anthropic request failed", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	assert.True(t, errors.As(error(err), &appErr))
}

func TestConstructorTypes(t *testing.T) {
	assert.Equal(t, ErrorTypeConfiguration, NewConfigurationError("ANTHROPIC_API_KEY is not set").Type)
	assert.Equal(t, ErrorTypeSchema, NewSchemaError("missing columns").Type)
	assert.Equal(t, ErrorTypeExternal, NewExternalError("upstream failed", nil).Type)
}

package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("service: %w", ErrStudentNotFound)
	assert.True(t, errors.Is(err, ErrResourceNotFound))
	assert.Equal(t, "service: student not found", err.Error())

	var custom *CustomError
	assert.True(t, errors.As(err, &custom))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]string{"name"}, "invalid %s", "faculty").WithCode("VAL_001")
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "invalid faculty", err.Error())
	assert.Equal(t, "VAL_001", err.Code)
	assert.Equal(t, []string{"name"}, err.Details)
}

func TestConflictAndBadRequest(t *testing.T) {
	conflict := NewConflictError("taken").WithCode("RES_004")
	assert.True(t, errors.Is(conflict, ErrConflict))
	assert.False(t, errors.Is(conflict, ErrBadRequest))
	assert.Equal(t, "RES_004", conflict.Code)

	bad := NewBadRequestError("Invalid request format").WithDetails("unexpected EOF")
	assert.True(t, errors.Is(fmt.Errorf("bind: %w", bad), ErrBadRequest))
	assert.Equal(t, "unexpected EOF", bad.Details)

	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}

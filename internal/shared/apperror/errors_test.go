package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "coach not found", NotFound("coach").Error())
	assert.Equal(t, "seatNumber: at least one seat is required", Invalid("seatNumber", "at least one seat is required").Error())
	assert.Equal(t, "booking conflict: seat 3 is already ordered", Conflict("booking", "seat 3 is already ordered").Error())
	assert.Equal(t, "forbidden", ForbiddenError{}.Error())
	assert.Equal(t, "internal error", InternalError{}.Error())
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load trip: %w", NotFound("trip"))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsConflict(wrapped))

	cause := errors.New("connection reset")
	internal := Internal("failed to save booking", cause)
	assert.True(t, IsInternal(internal))
	assert.ErrorIs(t, internal, cause)

	assert.True(t, IsValidation(fmt.Errorf("step 2: %w", Invalid("phone", "invalid phone number"))))
	assert.True(t, IsForbidden(Forbidden("You don't have permission to access")))
}

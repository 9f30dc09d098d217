package apperrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eventsphere/backend/internal/apperrors"
)

func TestConstructorsWrapTheirSentinel(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
	}{
		{apperrors.Unauthenticated("who are you"), apperrors.ErrUnauthenticated},
		{apperrors.Inactive("account disabled"), apperrors.ErrAccountInactive},
		{apperrors.Forbidden("not yours"), apperrors.ErrForbidden},
		{apperrors.NotFound("event %d not found", 7), apperrors.ErrNotFound},
		{apperrors.InvalidRequest("bad field"), apperrors.ErrInvalidRequest},
		{apperrors.Conflict("already there"), apperrors.ErrConflict},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, tt.err, tt.sentinel)
	}

	assert.Equal(t, "event 7 not found", apperrors.NotFound("event %d not found", 7).Error())
}

func TestInternalHidesTheCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperrors.Internal(cause)

	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "something went wrong", err.Error())
	assert.NotContains(t, err.Error(), "connection refused")
}

package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIsMatchesByKind(t *testing.T) {
	err := NotFound("trip %d not found", 12)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "trip 12 not found", err.Error())
}

func TestKindOfSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create trip: %w", Conflict("driver 7 is not available"))

	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrConflict))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestStoreUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := StoreUnavailable(cause, "insert booking")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, "insert booking failed: connection refused", err.Error())
	assert.Equal(t, "store_unavailable", err.Kind.String())
}

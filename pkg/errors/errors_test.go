package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Clone(ErrInvalidTimeFormat, "bad start"))

	got := FromError(wrapped)
	assert.Equal(t, "INVALID_TIME_FORMAT", got.Code)
	assert.Equal(t, http.StatusBadRequest, got.Status)
	assert.Equal(t, "bad start", got.Message)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	cause := errors.New("boom")
	got := FromError(cause)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.True(t, errors.Is(got, cause))
	assert.Nil(t, FromError(nil))
}

func TestCloneLeavesOriginalUntouched(t *testing.T) {
	clone := Clone(ErrNotFound, "task not found")
	assert.Equal(t, "task not found", clone.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
	assert.Nil(t, Clone(nil, "x"))
}

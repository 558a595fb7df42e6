package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("disk full")
	err := storeError("tasks.Create", cause)

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "tasks.Create: store: disk full", err.Error())

	wrapped := fmt.Errorf("outer: %w", notFound("notes.Delete", "abc"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.ErrorIs(t, wrapped, ErrNotFound)

	assert.Equal(t, KindDecode, KindOf(DecodeError("bridge", cause)))
	assert.Equal(t, KindUnknown, KindOf(cause))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, "validation", KindValidation.String())
}

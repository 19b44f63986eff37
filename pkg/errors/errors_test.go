package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(nil))
	assert.Equal(t, ErrCodeInternal, CodeOf(stderrors.New("boom")))
	assert.Equal(t, ErrCodeNotFound, CodeOf(NotFound("product", "p-1")))

	wrapped := fmt.Errorf("outer: %w", Forbidden("admin only"))
	assert.Equal(t, ErrCodeForbidden, CodeOf(wrapped))
	assert.True(t, HasCode(wrapped, ErrCodeForbidden))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrCodeUnavailable, "failed to reach store")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), string(ErrCodeUnavailable))
}

func TestInvalidInputCarriesField(t *testing.T) {
	err := InvalidInput("amount", "amount must be positive")

	e, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "amount", e.Field)
	assert.Equal(t, ErrCodeValidation, e.Code)
}

package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorKinds(t *testing.T) {
	t.Run("constructors set kind", func(t *testing.T) {
		assert.Equal(t, KindBusiness, NewDomainError("X", "x").Kind)
		assert.Equal(t, KindValidation, NewValidationError("X", "x").Kind)
		assert.Equal(t, KindConflict, NewConflictError("X", "x").Kind)
		assert.Equal(t, KindNotFound, NewNotFoundError("X", "x").Kind)
	})

	t.Run("predicates see through wrapping", func(t *testing.T) {
		err := fmt.Errorf("create record: %w", NewConflictError("DUPLICATE_PERIOD_RECORD", "dup"))
		assert.True(t, IsConflict(err))
		assert.False(t, IsValidation(err))
		assert.False(t, IsNotFound(err))
	})

	t.Run("plain errors have no kind", func(t *testing.T) {
		assert.Equal(t, ErrorKind(""), KindOf(errors.New("boom")))
		assert.False(t, IsConflict(nil))
	})

	t.Run("errors.Is matches by code", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", NewNotFoundError("NOT_FOUND", "Fiscal record not found"))
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrInvalidState))
	})
}

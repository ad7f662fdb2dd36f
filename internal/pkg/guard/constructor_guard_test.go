package guard_test

import (
	"errors"
	"testing"

	"swiftserve/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		assert.NotNil(t, g)

		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_fails_with_provided_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		customError := errors.New("command must be created via constructor")

		err := g.Validate(customError)

		require.Error(t, err)
		assert.Equal(t, customError, err)
	})

	t.Run("zero_value_guard_fails_with_default_error_when_nil_passed", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("constructed_guard_passes_even_with_nil_error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(nil))
	})

	t.Run("guard_embedded_in_struct_detects_zero_value", func(t *testing.T) {
		type command struct {
			guard guard.ConstructorGuard
		}

		notConstructed := command{}
		constructed := command{guard: guard.NewConstructorGuard()}
		sentinel := errors.New("not constructed")

		require.Error(t, notConstructed.guard.Validate(sentinel))
		require.NoError(t, constructed.guard.Validate(sentinel))
	})
}

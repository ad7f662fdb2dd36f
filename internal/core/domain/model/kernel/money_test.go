package kernel_test

import (
	"math"
	"testing"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from cents", func(t *testing.T) {
		m, err := kernel.NewMoney(1250)

		require.NoError(t, err)
		assert.Equal(t, int64(1250), m.Cents())
		assert.InDelta(t, 12.50, m.Float64(), 0.0001)
	})

	t.Run("should allow zero amount", func(t *testing.T) {
		m, err := kernel.NewMoney(0)

		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount is invalid")
	})

	t.Run("should allow the maximum amount", func(t *testing.T) {
		m, err := kernel.NewMoney(kernel.MaxCents)

		require.NoError(t, err)
		assert.Equal(t, kernel.MaxCents, m.Cents())
	})

	t.Run("should reject amount above the cap", func(t *testing.T) {
		_, err := kernel.NewMoney(kernel.MaxCents + 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject an amount near int64 overflow", func(t *testing.T) {
		_, err := kernel.NewMoney(math.MaxInt64 / 2)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewMoneyFromFloat(t *testing.T) {
	t.Run("should round to nearest cent", func(t *testing.T) {
		testCases := []struct {
			amount   float64
			expected int64
		}{
			{9.99, 999},
			{0.005, 1},
			{10.004, 1000},
			{0, 0},
		}

		for _, tc := range testCases {
			m, err := kernel.NewMoneyFromFloat(tc.amount)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, m.Cents())
		}
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewMoneyFromFloat(-0.01)

		require.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("should add amounts", func(t *testing.T) {
		a, _ := kernel.NewMoney(999)
		b, _ := kernel.NewMoney(501)

		assert.Equal(t, int64(1500), a.Add(b).Cents())
	})

	t.Run("should multiply by quantity", func(t *testing.T) {
		price, _ := kernel.NewMoney(350)

		assert.Equal(t, int64(1050), price.Multiply(3).Cents())
	})

	t.Run("should round trip at cent precision", func(t *testing.T) {
		original, _ := kernel.NewMoneyFromFloat(123.45)
		restored, err := kernel.NewMoneyFromFloat(original.Float64())

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})
}

func TestMoney_String(t *testing.T) {
	t.Run("should format with two decimal places", func(t *testing.T) {
		m, _ := kernel.NewMoney(1205)

		assert.Equal(t, "12.05", m.String())
	})
}

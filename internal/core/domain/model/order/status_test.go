package order_test

import (
	"fmt"
	"testing"

	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Placed))
		assert.Equal(t, 2, int(order.Preparing))
		assert.Equal(t, 3, int(order.Ready))
		assert.Equal(t, 4, int(order.OutForDelivery))
		assert.Equal(t, 5, int(order.Delivered))
		assert.Equal(t, 6, int(order.Rejected))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Placed,
			order.Preparing,
			order.Ready,
			order.OutForDelivery,
			order.Delivered,
			order.Rejected,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Status(-1), order.Status(7), order.Status(100)} {
			require.Error(t, status.Validate())
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return wire representations", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.Placed, "Placed"},
			{order.Preparing, "Preparing"},
			{order.Ready, "Ready"},
			{order.OutForDelivery, "Out for Delivery"},
			{order.Delivered, "Delivered"},
			{order.Rejected, "Rejected"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})

	t.Run("should return Unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Status(42).String())
		assert.Equal(t, "Unknown", order.Unknown.String())
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should round-trip every valid status", func(t *testing.T) {
		statuses := []order.Status{
			order.Placed,
			order.Preparing,
			order.Ready,
			order.OutForDelivery,
			order.Delivered,
			order.Rejected,
		}

		for _, status := range statuses {
			parsed, err := order.ParseStatus(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should parse the multi-word wire name", func(t *testing.T) {
		parsed, err := order.ParseStatus("Out for Delivery")
		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, parsed)
	})

	t.Run("should reject unknown strings", func(t *testing.T) {
		for _, raw := range []string{"", "placed", "Unknown", "Shipped", "OUT FOR DELIVERY"} {
			parsed, err := order.ParseStatus(raw)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Equal(t, order.Unknown, parsed)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Rejected.IsTerminal())

	for _, status := range []order.Status{order.Placed, order.Preparing, order.Ready, order.OutForDelivery} {
		assert.False(t, status.IsTerminal(), "%s should not be terminal", status)
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should allow every forward edge", func(t *testing.T) {
		edges := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Placed, order.Preparing},
			{order.Placed, order.Rejected},
			{order.Preparing, order.Ready},
			{order.Ready, order.OutForDelivery},
			{order.OutForDelivery, order.Delivered},
		}

		for _, edge := range edges {
			next, err := edge.from.TransitionTo(edge.to)
			require.NoError(t, err, "%s -> %s should be allowed", edge.from, edge.to)
			assert.Equal(t, edge.to, next)
		}
	})

	t.Run("should reject skipping stages", func(t *testing.T) {
		skips := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Placed, order.Ready},
			{order.Placed, order.OutForDelivery},
			{order.Placed, order.Delivered},
			{order.Preparing, order.OutForDelivery},
			{order.Preparing, order.Delivered},
			{order.Ready, order.Delivered},
		}

		for _, skip := range skips {
			_, err := skip.from.TransitionTo(skip.to)
			require.ErrorIs(t, err, order.ErrInvalidTransition, "%s -> %s", skip.from, skip.to)
		}
	})

	t.Run("should reject backward edges", func(t *testing.T) {
		backwards := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Preparing, order.Placed},
			{order.Ready, order.Preparing},
			{order.OutForDelivery, order.Ready},
			{order.Delivered, order.OutForDelivery},
		}

		for _, edge := range backwards {
			_, err := edge.from.TransitionTo(edge.to)
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})

	t.Run("should reject self-loops", func(t *testing.T) {
		for _, status := range []order.Status{order.Placed, order.Preparing, order.Ready, order.OutForDelivery} {
			_, err := status.TransitionTo(status)
			require.ErrorIs(t, err, order.ErrInvalidTransition, "%s -> %s", status, status)
		}
	})

	t.Run("should reject any edge out of a terminal status", func(t *testing.T) {
		targets := []order.Status{
			order.Placed, order.Preparing, order.Ready,
			order.OutForDelivery, order.Delivered, order.Rejected,
		}

		for _, terminal := range []order.Status{order.Delivered, order.Rejected} {
			for _, target := range targets {
				_, err := terminal.TransitionTo(target)
				require.ErrorIs(t, err, order.ErrInvalidTransition, "%s -> %s", terminal, target)
			}
		}
	})

	t.Run("should reject unknown target statuses", func(t *testing.T) {
		_, err := order.Placed.TransitionTo(order.Status(42))
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should carry the offending pair", func(t *testing.T) {
		_, err := order.Placed.TransitionTo(order.Delivered)

		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.Placed, transitionErr.From)
		assert.Equal(t, order.Delivered, transitionErr.To)
	})
}

func TestStatus_ValidateCanHaveAgent(t *testing.T) {
	t.Run("should require an agent once out for delivery", func(t *testing.T) {
		require.NoError(t, order.OutForDelivery.ValidateCanHaveAgent(true))
		require.NoError(t, order.Delivered.ValidateCanHaveAgent(true))

		require.Error(t, order.OutForDelivery.ValidateCanHaveAgent(false))
		require.Error(t, order.Delivered.ValidateCanHaveAgent(false))
	})

	t.Run("should forbid an agent before pickup", func(t *testing.T) {
		for _, status := range []order.Status{order.Placed, order.Preparing, order.Ready, order.Rejected} {
			require.NoError(t, status.ValidateCanHaveAgent(false))
			require.Error(t, status.ValidateCanHaveAgent(true), "%s should not carry an agent", status)
		}
	})
}

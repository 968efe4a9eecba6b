package order_test

import (
	"testing"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTable(t *testing.T) {
	forwardChain := []order.Status{
		order.Pending,
		order.PendingConfirmation,
		order.Preparing,
		order.ReadyForPickup,
		order.Delivering,
		order.Completed,
	}

	t.Run("every forward step in the chain is allowed", func(t *testing.T) {
		for i := 0; i < len(forwardChain)-1; i++ {
			from, to := forwardChain[i], forwardChain[i+1]
			assert.True(t, from.CanTransitionTo(to), "%s -> %s should be allowed", from, to)
		}
	})

	t.Run("skipping a stage is never allowed", func(t *testing.T) {
		for i := 0; i < len(forwardChain); i++ {
			for j := i + 2; j < len(forwardChain); j++ {
				from, to := forwardChain[i], forwardChain[j]
				assert.False(t, from.CanTransitionTo(to), "%s -> %s should be rejected", from, to)
			}
		}
	})

	t.Run("moving backwards is never allowed", func(t *testing.T) {
		for i := 1; i < len(forwardChain); i++ {
			from, to := forwardChain[i], forwardChain[i-1]
			assert.False(t, from.CanTransitionTo(to), "%s -> %s should be rejected", from, to)
		}
	})

	t.Run("cancelled is reachable from every pre-completed state", func(t *testing.T) {
		for _, from := range forwardChain[:len(forwardChain)-1] {
			assert.True(t, from.CanTransitionTo(order.Cancelled), "%s -> cancelled should be allowed", from)
		}
	})

	t.Run("completed and cancelled are terminal", func(t *testing.T) {
		assert.True(t, order.Completed.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
		assert.False(t, order.Completed.CanTransitionTo(order.Cancelled))
		assert.False(t, order.Cancelled.CanTransitionTo(order.Pending))
	})
}

func TestStatus_Next(t *testing.T) {
	cases := []struct {
		from order.Status
		next order.Status
		ok   bool
	}{
		{order.Pending, order.PendingConfirmation, true},
		{order.PendingConfirmation, order.Preparing, true},
		{order.Preparing, order.ReadyForPickup, true},
		{order.ReadyForPickup, order.Delivering, true},
		{order.Delivering, order.Completed, true},
		{order.Completed, order.Unknown, false},
		{order.Cancelled, order.Unknown, false},
	}

	for _, tc := range cases {
		t.Run(tc.from.String(), func(t *testing.T) {
			next, ok := tc.from.Next()
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.next, next)
			}
		})
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("allowed transition returns new status", func(t *testing.T) {
		next, err := order.Pending.TransitionTo(order.PendingConfirmation)

		require.NoError(t, err)
		assert.Equal(t, order.PendingConfirmation, next)
	})

	t.Run("illegal transition returns typed error", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Delivering)

		require.Error(t, err)
		var transitionErr *order.InvalidStatusTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.Pending, transitionErr.From)
		assert.Equal(t, order.Delivering, transitionErr.To)
		assert.Equal(t, "invalid status transition: pending -> delivering", err.Error())
	})

	t.Run("unknown status fails validation", func(t *testing.T) {
		_, err := order.Unknown.TransitionTo(order.Pending)

		require.Error(t, err)
	})
}

func TestStatus_String_RoundTrip(t *testing.T) {
	statuses := []order.Status{
		order.Pending, order.PendingConfirmation, order.Preparing,
		order.ReadyForPickup, order.Delivering, order.Completed, order.Cancelled,
	}

	for _, s := range statuses {
		parsed, err := order.StatusFromString(s.String())
		require.NoError(t, err, s.String())
		assert.Equal(t, s, parsed)
	}

	_, err := order.StatusFromString("unknown")
	require.Error(t, err)

	_, err = order.StatusFromString("bogus")
	require.Error(t, err)
}

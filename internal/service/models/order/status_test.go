package order

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "preparing", "ready", "completed", "cancelled"} {
		got, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), got)
	}

	_, err := ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCanTransitionTo(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled}

	legal := map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusPreparing, StatusCancelled},
		StatusPreparing: {StatusReady, StatusCancelled},
		StatusReady:     {StatusCompleted},
		StatusCompleted: nil,
		StatusCancelled: nil,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, allowed := range legal[from] {
				if allowed == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusReady.IsTerminal())
}

func TestTransitionIllegal(t *testing.T) {
	o := &Order{Status: StatusPending}

	err := o.Transition(StatusReady, time.Now())
	require.Error(t, err)

	var transitionErr *IllegalTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, StatusPending, transitionErr.From)
	assert.Equal(t, StatusReady, transitionErr.To)
	assert.Equal(t, StatusPending, o.Status, "failed transition must not mutate the order")
}

func TestTransitionPreparingSetsEstimate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	o := &Order{Status: StatusConfirmed}

	require.NoError(t, o.Transition(StatusPreparing, now))

	assert.Equal(t, StatusPreparing, o.Status)
	require.NotNil(t, o.EstimatedTime)
	assert.Equal(t, now.Add(20*time.Minute), *o.EstimatedTime)
	assert.Equal(t, now, o.UpdatedAt)
}

func TestTransitionReadySetsEstimateToNow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC)
	o := &Order{Status: StatusPreparing}

	require.NoError(t, o.Transition(StatusReady, now))

	require.NotNil(t, o.EstimatedTime)
	assert.Equal(t, now, *o.EstimatedTime)
}

func TestTransitionCompleted(t *testing.T) {
	now := time.Date(2026, 3, 15, 13, 0, 0, 0, time.UTC)

	t.Run("cash order is marked paid", func(t *testing.T) {
		o := &Order{
			Status:        StatusReady,
			PaymentMethod: PaymentMethodCash,
			PaymentStatus: PaymentStatusPending,
		}

		require.NoError(t, o.Transition(StatusCompleted, now))

		assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
		require.NotNil(t, o.CompletedAt)
		assert.Equal(t, now, *o.CompletedAt)
	})

	t.Run("card payment status untouched", func(t *testing.T) {
		o := &Order{
			Status:        StatusReady,
			PaymentMethod: PaymentMethodCard,
			PaymentStatus: PaymentStatusPaid,
		}

		require.NoError(t, o.Transition(StatusCompleted, now))

		assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
	})
}

func TestTransitionCancelled(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)

	t.Run("paid order is refunded", func(t *testing.T) {
		o := &Order{
			Status:        StatusConfirmed,
			PaymentMethod: PaymentMethodOnline,
			PaymentStatus: PaymentStatusPaid,
		}

		require.NoError(t, o.Transition(StatusCancelled, now))

		assert.Equal(t, StatusCancelled, o.Status)
		assert.Equal(t, PaymentStatusRefunded, o.PaymentStatus)
		require.NotNil(t, o.CancelledAt)
		assert.Equal(t, now, *o.CancelledAt)
	})

	t.Run("unpaid order stays pending payment", func(t *testing.T) {
		o := &Order{
			Status:        StatusPending,
			PaymentMethod: PaymentMethodCash,
			PaymentStatus: PaymentStatusPending,
		}

		require.NoError(t, o.Transition(StatusCancelled, now))

		assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
	})
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&Order{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Order{Status: StatusConfirmed}).CanBeCancelled())

	// Staff may still cancel a preparing order through the transition table,
	// but the customer window is closed.
	assert.False(t, (&Order{Status: StatusPreparing}).CanBeCancelled())
	assert.True(t, StatusPreparing.CanTransitionTo(StatusCancelled))

	assert.False(t, (&Order{Status: StatusReady}).CanBeCancelled())
	assert.False(t, (&Order{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Order{Status: StatusCancelled}).CanBeCancelled())
}

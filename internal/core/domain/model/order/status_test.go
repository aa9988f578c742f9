package order_test

import (
	"fmt"
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allowedEdges is the complete transition whitelist. Every pair outside it
// must be rejected, including self-transitions and skipped states.
var allowedEdges = map[[2]order.Status]bool{
	{order.Pending, order.Preparing}:  true,
	{order.Pending, order.Cancelled}:  true,
	{order.Preparing, order.Ready}:    true,
	{order.Preparing, order.Cancelled}: true,
	{order.Ready, order.PickedUp}:     true,
	{order.Ready, order.Cancelled}:    true,
	{order.PickedUp, order.Delivered}: true,
}

func TestStatus_CanTransition_TableClosure(t *testing.T) {
	sweep := append([]order.Status{order.Unknown, order.Status(-1), order.Status(99)}, order.AllStatuses()...)

	for _, from := range sweep {
		for _, to := range sweep {
			edge := [2]order.Status{from, to}
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				assert.Equal(t, allowedEdges[edge], order.CanTransition(from, to))
			})
		}
	}
}

func TestStatus_CanTransition_RejectsSkips(t *testing.T) {
	t.Run("pending cannot jump to picked_up", func(t *testing.T) {
		assert.False(t, order.CanTransition(order.Pending, order.PickedUp))
	})

	t.Run("ready cannot be un-readied", func(t *testing.T) {
		assert.False(t, order.CanTransition(order.Ready, order.Preparing))
	})

	t.Run("terminal states admit nothing", func(t *testing.T) {
		for _, to := range order.AllStatuses() {
			assert.False(t, order.CanTransition(order.Delivered, to))
			assert.False(t, order.CanTransition(order.Cancelled, to))
		}
	})
}

func TestStatus_IsCancellable(t *testing.T) {
	cancellable := map[order.Status]bool{
		order.Pending:   true,
		order.Preparing: true,
		order.Ready:     true,
	}

	for _, status := range order.AllStatuses() {
		t.Run(status.String(), func(t *testing.T) {
			assert.Equal(t, cancellable[status], status.IsCancellable())
		})
	}

	t.Run("unknown is not cancellable", func(t *testing.T) {
		assert.False(t, order.Unknown.IsCancellable())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	for _, status := range []order.Status{order.Pending, order.Preparing, order.Ready, order.PickedUp} {
		assert.False(t, status.IsTerminal(), status.String())
	}
}

func TestStatus_NextHappyState(t *testing.T) {
	testCases := []struct {
		from order.Status
		next order.Status
		ok   bool
	}{
		{order.Pending, order.Preparing, true},
		{order.Preparing, order.Ready, true},
		{order.Ready, order.PickedUp, true},
		{order.PickedUp, order.Delivered, true},
		{order.Delivered, order.Unknown, false},
		{order.Cancelled, order.Unknown, false},
		{order.Unknown, order.Unknown, false},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String(), func(t *testing.T) {
			next, ok := tc.from.NextHappyState()
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.next, next)
		})
	}
}

func TestStatus_Transition(t *testing.T) {
	t.Run("should return new status for whitelisted edge", func(t *testing.T) {
		next, err := order.Pending.Transition(order.Preparing)
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, next)
	})

	t.Run("should reject non-whitelisted edge locally", func(t *testing.T) {
		_, err := order.Pending.Transition(order.PickedUp)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "pending -> picked_up")
	})
}

func TestStatus_Strings(t *testing.T) {
	t.Run("should round trip through wire names", func(t *testing.T) {
		for _, status := range order.AllStatuses() {
			parsed, err := order.StatusFromString(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unrecognized wire names", func(t *testing.T) {
		_, err := order.StatusFromString("shipped")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should print unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Status(42).String())
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate all real statuses", func(t *testing.T) {
		for _, status := range order.AllStatuses() {
			require.NoError(t, status.Validate())
		}
	})

	t.Run("should reject Unknown and out-of-range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(100)} {
			err := status.Validate()
			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestHappyPath(t *testing.T) {
	assert.Equal(t, []order.Status{
		order.Pending, order.Preparing, order.Ready, order.PickedUp, order.Delivered,
	}, order.HappyPath())
}

package order_test

import (
	"fmt"
	"testing"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Created))
		assert.Equal(t, 2, int(order.PickedUp))
		assert.Equal(t, 3, int(order.InTransit))
		assert.Equal(t, 4, int(order.Delivered))
		assert.Equal(t, 5, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		for _, status := range order.AllStatuses() {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		invalidStatuses := []order.Status{
			order.Unknown,
			order.Status(-1),
			order.Status(6),
			order.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return lowercase wire strings", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.Created, "created"},
			{order.PickedUp, "picked_up"},
			{order.InTransit, "in_transit"},
			{order.Delivered, "delivered"},
			{order.Cancelled, "cancelled"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})

	t.Run("should return unknown for invalid statuses", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Unknown.String())
		assert.Equal(t, "unknown", order.Status(42).String())
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse every wire string back to its status", func(t *testing.T) {
		for _, status := range order.AllStatuses() {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown strings", func(t *testing.T) {
		for _, s := range []string{"", "unknown", "CREATED", "shipped"} {
			_, err := order.ParseStatus(s)
			require.Error(t, err, "expected %q to be rejected", s)
		}
	})
}

func TestStatus_TransitionTable(t *testing.T) {
	t.Run("should allow exactly the configured transitions", func(t *testing.T) {
		allowed := map[order.Status][]order.Status{
			order.Created:   {order.PickedUp, order.Cancelled},
			order.PickedUp:  {order.InTransit, order.Cancelled},
			order.InTransit: {order.Delivered},
			order.Delivered: {},
			order.Cancelled: {},
		}

		for from, targets := range allowed {
			assert.ElementsMatch(t, targets, from.AllowedTransitions(),
				"allowed transitions from %s", from)

			for _, to := range order.AllStatuses() {
				expected := false
				for _, target := range targets {
					if target == to {
						expected = true
					}
				}
				assert.Equal(t, expected, from.CanTransitionTo(to),
					"transition %s -> %s", from, to)
			}
		}
	})

	t.Run("every status is reachable from created", func(t *testing.T) {
		reachable := map[order.Status]bool{order.Created: true}
		frontier := []order.Status{order.Created}
		for len(frontier) > 0 {
			current := frontier[0]
			frontier = frontier[1:]
			for _, next := range current.AllowedTransitions() {
				if !reachable[next] {
					reachable[next] = true
					frontier = append(frontier, next)
				}
			}
		}

		for _, status := range order.AllStatuses() {
			assert.True(t, reachable[status], "%s must be reachable from created", status)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Created.IsTerminal())
	assert.False(t, order.PickedUp.IsTerminal())
	assert.False(t, order.InTransit.IsTerminal())
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Unknown.IsTerminal())
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should move along a legal edge", func(t *testing.T) {
		newStatus, err := order.Created.TransitionTo(order.PickedUp)

		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, newStatus)
	})

	t.Run("should reject an illegal edge with both statuses reported", func(t *testing.T) {
		_, err := order.PickedUp.TransitionTo(order.Delivered)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)

		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.PickedUp, transitionErr.From)
		assert.Equal(t, order.Delivered, transitionErr.To)
		assert.Equal(t, "invalid status transition from picked_up to delivered", err.Error())
	})

	t.Run("should reject an invalid target status", func(t *testing.T) {
		_, err := order.Created.TransitionTo(order.Unknown)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("terminal states reject every move", func(t *testing.T) {
		for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
			for _, target := range order.AllStatuses() {
				_, err := terminal.TransitionTo(target)
				require.Error(t, err, "transition %s -> %s must fail", terminal, target)
			}
		}
	})
}

func TestSource(t *testing.T) {
	t.Run("should validate known sources", func(t *testing.T) {
		for _, source := range []order.Source{order.SourceSystem, order.SourceOperations, order.SourceDelivery} {
			require.NoError(t, source.Validate())
		}
	})

	t.Run("should reject unknown sources", func(t *testing.T) {
		_, err := order.ParseSource("merchant")
		require.Error(t, err)

		require.Error(t, order.Source("").Validate())
	})

	t.Run("should parse wire strings", func(t *testing.T) {
		source, err := order.ParseSource("delivery")
		require.NoError(t, err)
		assert.Equal(t, order.SourceDelivery, source)
	})
}

package commands_test

import (
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand_Success(t *testing.T) {
	id := mustOrderID(t, "ORD-200")

	cmd, err := commands.NewChangeOrderStatusCommand(id, order.PickedUp, "ops1", order.SourceOperations)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	assert.True(t, cmd.OrderID().IsEqual(id))
	assert.Equal(t, order.PickedUp, cmd.NewStatus())
	assert.Equal(t, "ops1", cmd.UpdatedBy())
	assert.Equal(t, order.SourceOperations, cmd.Source())
}

func TestNewChangeOrderStatusCommand_Errors(t *testing.T) {
	id := mustOrderID(t, "ORD-200")

	tests := map[string]func() (commands.ChangeOrderStatusCommand, error){
		"empty order id": func() (commands.ChangeOrderStatusCommand, error) {
			return commands.NewChangeOrderStatusCommand(
				kernel.OrderID{}, order.PickedUp, "ops1", order.SourceOperations,
			)
		},
		"unknown status": func() (commands.ChangeOrderStatusCommand, error) {
			return commands.NewChangeOrderStatusCommand(id, order.Unknown, "ops1", order.SourceOperations)
		},
		"empty actor": func() (commands.ChangeOrderStatusCommand, error) {
			return commands.NewChangeOrderStatusCommand(id, order.PickedUp, "", order.SourceOperations)
		},
		"invalid source": func() (commands.ChangeOrderStatusCommand, error) {
			return commands.NewChangeOrderStatusCommand(id, order.PickedUp, "ops1", order.Source("mail"))
		},
	}

	for name, build := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := build()
			require.Error(t, err)
		})
	}
}

func TestChangeOrderStatusCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.ChangeOrderStatusCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrChangeOrderStatusCommandIsNotConstructed)
}

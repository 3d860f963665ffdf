package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// status. Both the operations-authorized and the delivery-authorized entry
// points build this command; they differ only in the actor identity and the
// source tag they supply. The transition table applies to both.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.OrderID
	newStatus order.Status
	updatedBy string
	source    order.Source

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a status-change command.
// updatedBy is the actor credited with the change: a user identity on the
// operations path, a delivery-agent id on the delivery path.
func NewChangeOrderStatusCommand(
	orderID kernel.OrderID,
	newStatus order.Status,
	updatedBy string,
	source order.Source,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
		cmd.setUpdatedBy(updatedBy),
		cmd.setSource(source),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// NewStatus returns the requested target status.
func (c ChangeOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// UpdatedBy returns the actor credited with the change.
func (c ChangeOrderStatusCommand) UpdatedBy() string {
	return c.updatedBy
}

// Source returns the source tag of the change.
func (c ChangeOrderStatusCommand) Source() order.Source {
	return c.source
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}

func (c *ChangeOrderStatusCommand) setUpdatedBy(updatedBy string) error {
	if updatedBy == "" {
		return errs.NewValueIsRequiredError("updatedBy")
	}
	c.updatedBy = updatedBy
	return nil
}

func (c *ChangeOrderStatusCommand) setSource(source order.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}
	c.source = source
	return nil
}

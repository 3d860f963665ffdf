package commands

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/ports"
)

// systemActor is credited with the initial history record of every order.
const systemActor = "system"

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates the order in created status, writes the initial history record in
// the same transaction, and publishes the creation event after commit.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// Requires an OrderUoWFactory for transactional persistence and an
// EventPublisher for post-commit notification.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// Fails with an ObjectAlreadyExistsError when the order identifier is taken.
// The order row and the initial created/system ledger entry are persisted as
// one durable unit; the notification goes out only after the commit and its
// outcome does not affect the returned result.
func (h *CreateOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.ProductName(), cmd.Customer(), cmd.MerchantName(), now,
	)
	if err != nil {
		return nil, err
	}

	record, err := order.NewHistoryRecord(
		cmd.OrderID(), order.Created, systemActor, order.SourceSystem, now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.HistoryRepository().Append(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, order.NewStatusChangedEvent(newOrder, systemActor, order.SourceSystem))

	return newOrder, nil
}

package commands

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/keylock"
)

// ChangeOrderStatusResult reports a completed transition back to the caller.
type ChangeOrderStatusResult struct {
	OldStatus order.Status
	NewStatus order.Status
	UpdatedAt time.Time
}

// ChangeOrderStatusCommandHandler is the transition coordinator. For one
// status-change request it loads the order under an exclusive lock, consults
// the transition table through the aggregate, mutates the current status,
// appends to the history ledger unless the latest entry already carries the
// requested status, commits everything as one durable unit, and only then
// hands the event to the publisher.
//
// Two concurrent transitions on the same order are serialized twice over: by
// the per-order keyed mutex held across the whole unit and by the row lock
// taken inside the transaction. Transitions on different orders do not
// contend.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	locks      *keylock.KeyedMutex
}

// NewChangeOrderStatusCommandHandler creates the transition coordinator.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	locks *keylock.KeyedMutex,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		locks:      locks,
	}
}

// Handle processes one status-change request.
//
// Failure modes: ObjectNotFoundError when the order does not exist,
// InvalidTransitionError (carrying both statuses) when the transition table
// rejects the move, and the storage error when the commit fails, in which
// case the rollback leaves the order observably unchanged. A publish failure
// is not a failure mode; delivery is best-effort by contract.
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	historyRepo := uow.HistoryRepository()

	trackedOrder, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	oldStatus := trackedOrder.Status()
	if err = trackedOrder.ChangeStatus(cmd.NewStatus(), now); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = orderRepo.Update(ctx, trackedOrder); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	latest, err := historyRepo.GetLatest(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	// Idempotent no-duplicate policy: the ledger never records the same
	// status twice in a row for an order.
	if latest == nil || latest.Status() != cmd.NewStatus() {
		record, recordErr := order.NewHistoryRecord(
			cmd.OrderID(), cmd.NewStatus(), cmd.UpdatedBy(), cmd.Source(), now,
		)
		if recordErr != nil {
			return ChangeOrderStatusResult{}, recordErr
		}

		if err = historyRepo.Append(ctx, record); err != nil {
			return ChangeOrderStatusResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	h.publisher.Publish(ctx, order.NewStatusChangedEvent(trackedOrder, cmd.UpdatedBy(), cmd.Source()))

	return ChangeOrderStatusResult{
		OldStatus: oldStatus,
		NewStatus: trackedOrder.Status(),
		UpdatedAt: trackedOrder.UpdatedAt(),
	}, nil
}

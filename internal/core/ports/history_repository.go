package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
)

// HistoryRepository is the append-only ledger of accepted status changes.
// It never re-checks transition policy; the coordinator has already
// authorized every record it appends. There is no update or delete.
type HistoryRepository interface {
	// Append persists a new ledger entry.
	Append(ctx context.Context, record *order.HistoryRecord) error

	// GetLatest retrieves the most recent ledger entry for an order,
	// or nil when the order has no history yet.
	GetLatest(ctx context.Context, orderID kernel.OrderID) (*order.HistoryRecord, error)

	// ListByOrder retrieves all ledger entries for an order,
	// ascending by timestamp.
	ListByOrder(ctx context.Context, orderID kernel.OrderID) ([]*order.HistoryRecord, error)
}

package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Returns an ObjectAlreadyExistsError when the identifier is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate holding an exclusive
	// row lock for the remainder of the surrounding transaction. Used by
	// the transition coordinator to serialize status changes per order.
	GetForUpdate(ctx context.Context, id kernel.OrderID) (*order.Order, error)
}

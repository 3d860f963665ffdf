package ports

import (
	"context"

	"tracking/internal/core/domain/model/order"
)

// EventPublisher delivers committed status-change events to live
// subscribers. Delivery is strictly best-effort: implementations must never
// fail the transition that produced the event, and per-subscriber errors are
// handled inside the publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event order.StatusChangedEvent)
}

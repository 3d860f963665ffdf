package queries

import (
	"context"

	"tracking/internal/core/domain/model/order"
)

// ListStatusesQueryHandler serves the status enumeration from the domain's
// own transition table rather than a database lookup.
type ListStatusesQueryHandler struct{}

// NewListStatusesQueryHandler creates a handler for status enumeration reads.
func NewListStatusesQueryHandler() ListStatusesQueryHandler {
	return ListStatusesQueryHandler{}
}

// Handle returns every status as its lowercase wire string, in lifecycle
// order.
func (h ListStatusesQueryHandler) Handle(
	_ context.Context,
	query ListStatusesQuery,
) ([]string, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := order.AllStatuses()
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, status.String())
	}

	return names, nil
}

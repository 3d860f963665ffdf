package queries

import (
	"errors"

	"tracking/internal/pkg/guard"
)

var (
	ErrListStatusesQueryIsNotConstructed = errors.New(
		"ListStatusesQuery must be created via NewListStatusesQuery constructor",
	)
)

// ListStatusesQuery retrieves the full status enumeration as wire strings.
// This is a parameterless query backed by the status table itself, so the
// handler never touches the database.
type ListStatusesQuery struct {
	guard guard.ConstructorGuard
}

// NewListStatusesQuery creates a query for the status enumeration.
func NewListStatusesQuery() ListStatusesQuery {
	return ListStatusesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListStatusesQuery) Validate() error {
	return q.guard.Validate(ErrListStatusesQueryIsNotConstructed)
}

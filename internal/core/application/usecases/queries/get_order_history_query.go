package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var (
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

// GetOrderHistoryQuery retrieves the full status ledger of one order on
// behalf of a principal. The same ownership rule as GetOrderQuery applies.
type GetOrderHistoryQuery struct {
	orderID   kernel.OrderID
	principal account.Principal

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for an order's status history.
func NewGetOrderHistoryQuery(orderID kernel.OrderID, principal account.Principal) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	if _, err := account.NewPrincipal(principal.Identity, principal.Role); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{
		orderID:   orderID,
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose ledger is requested.
func (q GetOrderHistoryQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// Principal returns the caller on whose behalf the read runs.
func (q GetOrderHistoryQuery) Principal() account.Principal {
	return q.principal
}

// HistoryRecordResponse represents one ledger entry in the read model.
type HistoryRecordResponse struct {
	Status    string
	Timestamp time.Time
	UpdatedBy string
	Source    string
}

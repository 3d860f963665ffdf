package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)

	// ErrAccessDenied signals that the order exists but the caller's
	// principal is not allowed to read it.
	ErrAccessDenied = errors.New("access to the requested order is denied")
)

// GetOrderQuery retrieves a single order on behalf of a principal.
// Operations reads any order; a merchant reads only its own.
type GetOrderQuery struct {
	orderID   kernel.OrderID
	principal account.Principal

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's current state.
func NewGetOrderQuery(orderID kernel.OrderID, principal account.Principal) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if _, err := account.NewPrincipal(principal.Identity, principal.Role); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:   orderID,
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// Principal returns the caller on whose behalf the read runs.
func (q GetOrderQuery) Principal() account.Principal {
	return q.principal
}

// OrderResponse represents one order in the read model. The status travels
// as its lowercase wire string.
type OrderResponse struct {
	OrderID         string
	ProductName     string
	CustomerName    string
	CustomerContact string
	CustomerAddress string
	MerchantName    string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

package order

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"

	"tracking/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order represents a trackable shipment owned by a merchant. It is the
// aggregate root for the order lifecycle from creation to a terminal status.
//
// Order maintains these invariants:
//   - the identifier is externally assigned, valid, and immutable
//   - the customer descriptor is validated
//   - the current status is always a member of the status enumeration and is
//     reachable from created via the transition table
//   - status changes go through ChangeStatus, which enforces the transition
//     table and refreshes the update timestamp
//
// Orders are never deleted; delivered and cancelled end the lifecycle.
type Order struct {
	id           kernel.OrderID
	productName  string
	customer     kernel.Customer
	merchantName string
	status       Status
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewOrder creates a new Order in created status. The creation and update
// timestamps are both set to now.
//
// Parameters:
//   - id: externally assigned order identifier
//   - productName: non-empty product descriptor
//   - customer: validated customer descriptor
//   - merchantName: identity of the owning merchant
//   - now: the operation timestamp
func NewOrder(
	id kernel.OrderID,
	productName string,
	customer kernel.Customer,
	merchantName string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setProductName(productName),
		o.setCustomer(customer),
		o.setMerchantName(merchantName),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. All invariants are
// re-validated so corrupt rows cannot produce an invalid aggregate.
func RestoreOrder(
	id kernel.OrderID,
	productName string,
	customer kernel.Customer,
	merchantName string,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setProductName(productName),
		o.setCustomer(customer),
		o.setMerchantName(merchantName),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's externally assigned identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// ProductName returns the product descriptor.
func (o *Order) ProductName() string {
	return o.productName
}

// Customer returns the customer descriptor.
func (o *Order) Customer() kernel.Customer {
	return o.customer
}

// MerchantName returns the identity of the owning merchant.
func (o *Order) MerchantName() string {
	return o.merchantName
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the most recent status change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsOwnedBy reports whether the given merchant identity owns this order.
func (o *Order) IsOwnedBy(merchantName string) bool {
	return o.merchantName == merchantName
}

// ChangeStatus moves the order to the requested status, enforcing the
// transition table. On success the update timestamp is set to at.
//
// Returns an InvalidTransitionError carrying the current and the requested
// status when the move is not allowed; the order is left unchanged.
func (o *Order) ChangeStatus(requested Status, at time.Time) error {
	newStatus, err := o.status.TransitionTo(requested)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = at
	return nil
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	o.productName = productName
	return nil
}

func (o *Order) setCustomer(customer kernel.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setMerchantName(merchantName string) error {
	if merchantName == "" {
		return errs.NewValueIsRequiredError("merchantName")
	}
	o.merchantName = merchantName
	return nil
}

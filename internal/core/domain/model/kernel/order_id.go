package kernel

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// maxOrderIDLength matches the column width of the order identifier.
const maxOrderIDLength = 50

// ErrOrderIDIsNotConstructed indicates that an OrderID was not created through
// NewOrderID. It is returned when validating a zero-value OrderID.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError("OrderID must be created via NewOrderID")

// OrderID is a value object for the externally assigned order identifier.
// Unlike internal surrogate keys, the identifier is chosen by the merchant
// system that creates the order, so it is validated rather than generated.
//
// The zero value of OrderID is invalid; construct it with NewOrderID.
// OrderID is immutable and safe for concurrent use.
type OrderID struct {
	value string
}

// NewOrderID creates an OrderID from its external string form.
// The identifier must be non-empty and at most 50 characters.
func NewOrderID(value string) (OrderID, error) {
	if value == "" {
		return OrderID{}, errs.NewValueIsRequiredError("orderID")
	}
	if len(value) > maxOrderIDLength {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("%q is longer than %d characters", value, maxOrderIDLength))
	}

	return OrderID{value: value}, nil
}

// String returns the external string form of the identifier.
func (id OrderID) String() string {
	return id.value
}

// IsEqual compares two order identifiers by value.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

// Validate checks that the OrderID was properly constructed.
// Returns ErrOrderIDIsNotConstructed for the zero value.
func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}

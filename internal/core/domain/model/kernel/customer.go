package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"tracking/internal/pkg/errs"
)

const maxAddressLength = 200

var (
	// customerNamePattern allows letters and spaces only.
	customerNamePattern = regexp.MustCompile(`^[A-Za-z\s]+$`)

	// contactPattern allows an optional leading plus followed by 10 to 15 digits.
	contactPattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// ErrCustomerIsNotConstructed indicates that a Customer was not created
// through NewCustomer. It is returned when validating a zero-value Customer.
var ErrCustomerIsNotConstructed = errs.NewValueIsRequiredError("Customer must be created via NewCustomer")

// Customer is a value object describing the recipient of an order:
// name, contact number, and delivery address. All fields are validated
// on construction and immutable afterwards.
type Customer struct {
	name    string
	contact string
	address string
}

// NewCustomer creates a validated Customer.
//
// Rules:
//   - name: non-empty after trimming, letters and spaces only
//   - contact: optional leading "+" followed by 10-15 digits
//   - address: non-empty, at most 200 characters
func NewCustomer(name, contact, address string) (Customer, error) {
	customer := Customer{}

	if err := customer.setName(name); err != nil {
		return Customer{}, err
	}
	if err := customer.setContact(contact); err != nil {
		return Customer{}, err
	}
	if err := customer.setAddress(address); err != nil {
		return Customer{}, err
	}

	return customer, nil
}

// Name returns the customer's name with surrounding whitespace trimmed.
func (c Customer) Name() string {
	return c.name
}

// Contact returns the customer's contact number.
func (c Customer) Contact() string {
	return c.contact
}

// Address returns the customer's delivery address.
func (c Customer) Address() string {
	return c.address
}

// Validate checks that the Customer was properly constructed.
// Returns ErrCustomerIsNotConstructed for the zero value.
func (c Customer) Validate() error {
	if c.name == "" {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	if !customerNamePattern.MatchString(trimmed) {
		return errs.NewValueIsInvalidErrorWithCause("customerName",
			fmt.Errorf("%q must contain only letters and spaces", name))
	}

	c.name = trimmed
	return nil
}

func (c *Customer) setContact(contact string) error {
	if contact == "" {
		return errs.NewValueIsRequiredError("customerContact")
	}
	if !contactPattern.MatchString(contact) {
		return errs.NewValueIsInvalidErrorWithCause("customerContact",
			fmt.Errorf("%q is not a valid contact number", contact))
	}

	c.contact = contact
	return nil
}

func (c *Customer) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("customerAddress")
	}
	if len(address) > maxAddressLength {
		return errs.NewValueIsInvalidErrorWithCause("customerAddress",
			fmt.Errorf("address is longer than %d characters", maxAddressLength))
	}

	c.address = address
	return nil
}

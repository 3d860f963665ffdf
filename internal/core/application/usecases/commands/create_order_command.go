package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a merchant's request to register a new
// delivery order. It carries the externally assigned order identifier, the
// product and customer descriptors, and the identity of the owning merchant.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.OrderID
	productName  string
	customer     kernel.Customer
	merchantName string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// All descriptors must already be valid value objects; the merchant name
// comes from the authenticated identity and must be non-empty.
func NewCreateOrderCommand(
	orderID kernel.OrderID,
	productName string,
	customer kernel.Customer,
	merchantName string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductName(productName),
		cmd.setCustomer(customer),
		cmd.setMerchantName(merchantName),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the externally assigned order identifier.
func (c CreateOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// ProductName returns the product descriptor.
func (c CreateOrderCommand) ProductName() string {
	return c.productName
}

// Customer returns the customer descriptor.
func (c CreateOrderCommand) Customer() kernel.Customer {
	return c.customer
}

// MerchantName returns the identity of the owning merchant.
func (c CreateOrderCommand) MerchantName() string {
	return c.merchantName
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	c.productName = productName
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer kernel.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setMerchantName(merchantName string) error {
	if merchantName == "" {
		return errs.NewValueIsRequiredError("merchantName")
	}
	c.merchantName = merchantName
	return nil
}

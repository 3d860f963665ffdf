// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// rows.
package orderrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The externally assigned order id is the primary key; the
// status is stored as its lowercase wire string.
type OrderDTO struct {
	OrderID         string `gorm:"primaryKey;size:50"`
	ProductName     string
	CustomerName    string
	CustomerContact string `gorm:"index"`
	CustomerAddress string
	MerchantName    string `gorm:"index"`
	Status          string `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		OrderID:         aggregate.ID().String(),
		ProductName:     aggregate.ProductName(),
		CustomerName:    aggregate.Customer().Name(),
		CustomerContact: aggregate.Customer().Contact(),
		CustomerAddress: aggregate.Customer().Address(),
		MerchantName:    aggregate.MerchantName(),
		Status:          aggregate.Status().String(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

// toDomain converts a database row back into an order aggregate.
// All invariants are re-validated through RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.NewOrderID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	customer, err := kernel.NewCustomer(dto.CustomerName, dto.CustomerContact, dto.CustomerAddress)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.ProductName, customer, dto.MerchantName, status, dto.CreatedAt, dto.UpdatedAt,
	)
}

package queries

import (
	"context"
	"database/sql"
	"errors"

	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order's current state from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the read. Returns an ObjectNotFoundError when the order
// does not exist and ErrAccessDenied when the principal may not read it.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_name,
			customer_name,
			customer_contact,
			customer_address,
			merchant_name,
			status,
			created_at,
			updated_at
		FROM orders
		WHERE order_id = ?
	`, query.OrderID().String()).Row()

	var resp OrderResponse
	err := row.Scan(
		&resp.OrderID,
		&resp.ProductName,
		&resp.CustomerName,
		&resp.CustomerContact,
		&resp.CustomerAddress,
		&resp.MerchantName,
		&resp.Status,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
		}
		return OrderResponse{}, err
	}

	if !query.Principal().CanViewOrdersOf(resp.MerchantName) {
		return OrderResponse{}, ErrAccessDenied
	}

	return resp, nil
}

package queries

import (
	"context"
	"strings"

	"tracking/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves filtered order listings from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing. A merchant principal is scoped to its own
// orders no matter what merchant filter the request carried. Results are
// sorted by creation time, newest first.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()

	conditions := make([]string, 0, 6)
	args := make([]any, 0, 8)

	switch {
	case filter.Status == StatusFilterActive:
		conditions = append(conditions, "status NOT IN (?, ?)")
		args = append(args, order.Delivered.String(), order.Cancelled.String())
	case filter.Status != "":
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}

	merchant := filter.Merchant
	if !query.Principal().IsOperations() {
		merchant = query.Principal().Identity
	}
	if merchant != "" {
		conditions = append(conditions, "merchant_name = ?")
		args = append(args, merchant)
	}

	if filter.CustomerContact != "" {
		conditions = append(conditions, "customer_contact = ?")
		args = append(args, filter.CustomerContact)
	}

	if filter.FromDate != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *filter.FromDate)
	}

	if filter.ToDate != nil {
		// The end date is inclusive: everything created before the next day.
		conditions = append(conditions, "created_at < ?")
		args = append(args, filter.ToDate.AddDate(0, 0, 1))
	}

	sqlQuery := `
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
	`
	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY created_at DESC OFFSET ? LIMIT ?"
	args = append(args, filter.Skip, filter.Limit)

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		var resp OrderResponse
		err = rows.Scan(
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
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

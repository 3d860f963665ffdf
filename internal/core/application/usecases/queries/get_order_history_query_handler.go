package queries

import (
	"context"
	"database/sql"
	"errors"

	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler retrieves the status ledger of one order.
// Entries come back oldest first so the response reads as a timeline.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for history reads.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the read. The owning order is checked first: an absent
// order yields an ObjectNotFoundError, a foreign one ErrAccessDenied.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]HistoryRecordResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT merchant_name
		FROM orders
		WHERE order_id = ?
	`, query.OrderID().String()).Row()

	var merchantName string
	if err := row.Scan(&merchantName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
		}
		return nil, err
	}

	if !query.Principal().CanViewOrdersOf(merchantName) {
		return nil, ErrAccessDenied
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			timestamp,
			updated_by,
			source
		FROM status_history
		WHERE order_id = ?
		ORDER BY timestamp ASC
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]HistoryRecordResponse, 0)
	for rows.Next() {
		var record HistoryRecordResponse
		err = rows.Scan(
			&record.Status,
			&record.Timestamp,
			&record.UpdatedBy,
			&record.Source,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

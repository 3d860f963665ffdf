package historyrepo

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormHistoryRepository implements ports.HistoryRepository using GORM.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history ledger repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append inserts a new ledger entry.
func (r *GormHistoryRepository) Append(ctx context.Context, record *order.HistoryRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetLatest retrieves the most recent ledger entry for an order.
// Returns nil without error when the order has no history yet.
func (r *GormHistoryRepository) GetLatest(ctx context.Context, orderID kernel.OrderID) (*order.HistoryRecord, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto HistoryRecordDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.String()).
		Order("timestamp DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByOrder retrieves the full ledger of an order, oldest entry first.
func (r *GormHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.OrderID) ([]*order.HistoryRecord, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryRecordDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.String()).
		Order("timestamp ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*order.HistoryRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, recordErr := toDomain(dto)
		if recordErr != nil {
			return nil, recordErr
		}
		records = append(records, record)
	}

	return records, nil
}

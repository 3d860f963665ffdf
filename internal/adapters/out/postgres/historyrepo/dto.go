// Package historyrepo provides data transfer objects and mapping functions
// for the append-only status history ledger.
package historyrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// HistoryRecordDTO represents one ledger entry in the database. Entries are
// only ever inserted; no update path exists.
type HistoryRecordDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   string    `gorm:"size:50;index"`
	Status    string
	UpdatedBy string
	Source    string
	Timestamp time.Time `gorm:"index"`
}

// TableName specifies the database table name for ledger entries.
func (HistoryRecordDTO) TableName() string {
	return "status_history"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(record *order.HistoryRecord) HistoryRecordDTO {
	return HistoryRecordDTO{
		ID:        record.ID(),
		OrderID:   record.OrderID().String(),
		Status:    record.Status().String(),
		UpdatedBy: record.UpdatedBy(),
		Source:    record.Source().String(),
		Timestamp: record.Timestamp(),
	}
}

// toDomain converts a database row back into a ledger entry.
func toDomain(dto HistoryRecordDTO) (*order.HistoryRecord, error) {
	orderID, err := kernel.NewOrderID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	source, err := order.ParseSource(dto.Source)
	if err != nil {
		return nil, err
	}

	return order.RestoreHistoryRecord(dto.ID, orderID, status, dto.UpdatedBy, source, dto.Timestamp)
}

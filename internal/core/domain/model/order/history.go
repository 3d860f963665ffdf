package order

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrHistoryRecordIsNotConstructed is returned when a HistoryRecord was not
// created through NewHistoryRecord or RestoreHistoryRecord.
var ErrHistoryRecordIsNotConstructed = errors.New(
	"HistoryRecord must be created via NewHistoryRecord or RestoreHistoryRecord",
)

// HistoryRecord is an immutable ledger entry capturing one accepted status
// value for an order together with its provenance: who caused it and through
// which path. Records for an order form a prefix of legal transitions
// starting at created, with no two consecutive records repeating a status.
//
// Records are only ever appended by the transition coordinator; there is no
// update or delete.
type HistoryRecord struct {
	id        uuid.UUID
	orderID   kernel.OrderID
	status    Status
	updatedBy string
	source    Source
	timestamp time.Time

	isConstructed bool
}

// NewHistoryRecord creates a ledger entry with a fresh identifier.
func NewHistoryRecord(
	orderID kernel.OrderID,
	status Status,
	updatedBy string,
	source Source,
	timestamp time.Time,
) (*HistoryRecord, error) {
	return RestoreHistoryRecord(uuid.New(), orderID, status, updatedBy, source, timestamp)
}

// RestoreHistoryRecord reconstructs a ledger entry from persistence.
func RestoreHistoryRecord(
	id uuid.UUID,
	orderID kernel.OrderID,
	status Status,
	updatedBy string,
	source Source,
	timestamp time.Time,
) (*HistoryRecord, error) {
	record := &HistoryRecord{
		id:            id,
		timestamp:     timestamp,
		isConstructed: true,
	}

	if err := errors.Join(
		record.setOrderID(orderID),
		record.setStatus(status),
		record.setUpdatedBy(updatedBy),
		record.setSource(source),
	); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate ensures the record was properly constructed.
func (r *HistoryRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrHistoryRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's identifier.
func (r *HistoryRecord) ID() uuid.UUID {
	return r.id
}

// OrderID returns the identifier of the order the record belongs to.
func (r *HistoryRecord) OrderID() kernel.OrderID {
	return r.orderID
}

// Status returns the recorded status value.
func (r *HistoryRecord) Status() Status {
	return r.status
}

// UpdatedBy returns the identity of the actor who caused the status change.
func (r *HistoryRecord) UpdatedBy() string {
	return r.updatedBy
}

// Source returns the source tag of the status change.
func (r *HistoryRecord) Source() Source {
	return r.source
}

// Timestamp returns when the status change was recorded.
func (r *HistoryRecord) Timestamp() time.Time {
	return r.timestamp
}

func (r *HistoryRecord) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *HistoryRecord) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *HistoryRecord) setUpdatedBy(updatedBy string) error {
	if updatedBy == "" {
		return errs.NewValueIsRequiredError("updatedBy")
	}
	r.updatedBy = updatedBy
	return nil
}

func (r *HistoryRecord) setSource(source Source) error {
	if err := source.Validate(); err != nil {
		return err
	}
	r.source = source
	return nil
}

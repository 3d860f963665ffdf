package order

import "time"

// StatusChangedEvent describes a committed status change, handed to the
// notifier after the transaction succeeds. It carries everything the fan-out
// layer needs: the order identity for the payload, the merchant for the
// per-event eligibility check, and the provenance metadata.
type StatusChangedEvent struct {
	OrderID      string
	MerchantName string
	Status       Status
	OccurredAt   time.Time
	UpdatedBy    string
	Source       Source
}

// NewStatusChangedEvent builds the event for the order's current state.
func NewStatusChangedEvent(o *Order, updatedBy string, source Source) StatusChangedEvent {
	return StatusChangedEvent{
		OrderID:      o.ID().String(),
		MerchantName: o.MerchantName(),
		Status:       o.Status(),
		OccurredAt:   o.UpdatedAt(),
		UpdatedBy:    updatedBy,
		Source:       source,
	}
}

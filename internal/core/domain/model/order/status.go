package order

import (
	"errors"
	"fmt"

	"tracking/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	created ──> picked_up ──> in_transit ──> delivered
//	   │            │
//	   └────────────┴──> cancelled
//
// delivered and cancelled are terminal states with no outgoing edges.
//
// Status is a value object that validates state transitions and provides
// the lowercase wire/persistence representation.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first registered
	// by a merchant and is waiting to be picked up.
	Created

	// PickedUp indicates a delivery agent has collected the order.
	PickedUp

	// InTransit indicates the order is on its way to the customer.
	InTransit

	// Delivered indicates the order reached the customer.
	// This is a terminal state.
	Delivered

	// Cancelled indicates the order was cancelled before delivery.
	// This is a terminal state.
	Cancelled
)

// ErrInvalidTransition is the unwrap target for InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a status change that the transition table
// does not permit. It carries both the current and the requested status so
// callers can surface exactly what was rejected.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// getStatusStrings returns a map of Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Created:   "created",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getAllowedTransitions returns the fixed transition table of the order
// state machine. Terminal states map to an empty set.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Created:   {PickedUp, Cancelled},
		PickedUp:  {InTransit, Cancelled},
		InTransit: {Delivered},
		Delivered: {},
		Cancelled: {},
	}
}

// AllStatuses returns every valid status in lifecycle order.
// Used by the statuses listing endpoint.
func AllStatuses() []Status {
	return []Status{Created, PickedUp, InTransit, Delivered, Cancelled}
}

// ParseStatus converts a lowercase wire string into a Status.
// Returns an error for anything outside the enumeration.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is a member of the enumeration.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getAllowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the lowercase wire representation of the status.
// Invalid values render as "unknown". Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// AllowedTransitions returns the statuses reachable from s in a single hop.
// The result is empty for terminal and invalid statuses.
func (s Status) AllowedTransitions() []Status {
	return getAllowedTransitions()[s]
}

// CanTransitionTo reports whether the single-hop transition from s to target
// is permitted by the transition table. It is pure and side-effect free; both
// the operations-initiated and the delivery-initiated paths rely on it.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range s.AllowedTransitions() {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(s.AllowedTransitions()) == 0
}

// TransitionTo validates the single-hop transition from s to target and
// returns the new status. On a disallowed move it returns an
// InvalidTransitionError carrying both statuses.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, &InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}

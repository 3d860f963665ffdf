package order

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Source tags the origin of a status change: the system itself (order
// creation), the operations team, or a delivery agent.
type Source string

const (
	SourceSystem     Source = "system"
	SourceOperations Source = "operations"
	SourceDelivery   Source = "delivery"
)

// ParseSource converts the wire string into a Source.
func ParseSource(s string) (Source, error) {
	source := Source(s)
	if err := source.Validate(); err != nil {
		return "", err
	}
	return source, nil
}

// Validate checks the Source is a member of {system, operations, delivery}.
func (s Source) Validate() error {
	switch s {
	case SourceSystem, SourceOperations, SourceDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("source",
			fmt.Errorf("%q is not a valid source", string(s)))
	}
}

// String returns the wire representation of the source tag.
func (s Source) String() string {
	return string(s)
}

package queries

import (
	"errors"
	"math"
	"time"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

const (
	// StatusFilterActive selects every order that has not yet reached a
	// terminal status.
	StatusFilterActive = "active"

	defaultListOrdersLimit = 50
	maxListOrdersLimit     = 100
)

// ListOrdersFilter carries the optional selection criteria for an order
// listing. Zero values mean "no filter"; a zero Limit selects the default
// page size.
type ListOrdersFilter struct {
	Status          string
	Merchant        string
	CustomerContact string
	FromDate        *time.Time
	ToDate          *time.Time
	Skip            int
	Limit           int
}

// ListOrdersQuery retrieves a filtered, paginated order listing on behalf of
// a principal. A merchant principal is always scoped to its own orders; the
// merchant filter only narrows an operations listing.
type ListOrdersQuery struct {
	principal account.Principal
	filter    ListOrdersFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates an order listing query.
// The status filter accepts either StatusFilterActive or one exact status
// wire string. Skip must be non-negative; the limit is capped at 100.
func NewListOrdersQuery(principal account.Principal, filter ListOrdersFilter) (ListOrdersQuery, error) {
	if _, err := account.NewPrincipal(principal.Identity, principal.Role); err != nil {
		return ListOrdersQuery{}, err
	}

	if filter.Status != "" && filter.Status != StatusFilterActive {
		if _, err := order.ParseStatus(filter.Status); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	if filter.Skip < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("skip", filter.Skip, 0, math.MaxInt)
	}

	if filter.Limit < 0 || filter.Limit > maxListOrdersLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 0, maxListOrdersLimit)
	}
	if filter.Limit == 0 {
		filter.Limit = defaultListOrdersLimit
	}

	if filter.FromDate != nil && filter.ToDate != nil && filter.ToDate.Before(*filter.FromDate) {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("toDate")
	}

	return ListOrdersQuery{
		principal: principal,
		filter:    filter,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Principal returns the caller on whose behalf the listing runs.
func (q ListOrdersQuery) Principal() account.Principal {
	return q.principal
}

// Filter returns the normalized selection criteria.
func (q ListOrdersQuery) Filter() ListOrdersFilter {
	return q.filter
}

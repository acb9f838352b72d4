package queries

import (
	"errors"

	"orderprocessing/internal/core/domain/model/order"
	"orderprocessing/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery lists orders, optionally restricted to one status.
//
// Example:
//
//	query := NewListOrdersQuery(c.QueryParam("status"))
//	views, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status    order.Status
	hasFilter bool

	guard guard.ConstructorGuard
}

// NewListOrdersQuery parses rawStatus as a status name, ignoring case and
// surrounding blanks. An empty or unrecognised value means no filter.
func NewListOrdersQuery(rawStatus string) ListOrdersQuery {
	status, ok := order.ParseStatus(rawStatus)

	return ListOrdersQuery{
		status:    status,
		hasFilter: ok,
		guard:     guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the status filter and whether one is set.
func (q ListOrdersQuery) Status() (order.Status, bool) {
	return q.status, q.hasFilter
}

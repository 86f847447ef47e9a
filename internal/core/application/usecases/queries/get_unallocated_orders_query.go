package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetUnallocatedOrdersQueryIsNotConstructed = errors.New(
	"GetUnallocatedOrdersQuery must be created via NewGetUnallocatedOrdersQuery constructor",
)

// GetUnallocatedOrdersQuery retrieves the operator work queue: orders that
// are confirmed but still missing at least one leg.
type GetUnallocatedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnallocatedOrdersQuery creates a query for orders awaiting allocation.
func NewGetUnallocatedOrdersQuery() GetUnallocatedOrdersQuery {
	return GetUnallocatedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnallocatedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnallocatedOrdersQueryIsNotConstructed)
}

// GetUnallocatedOrdersQueryResponse is one order awaiting allocation work.
// Confirmed orders need a rail leg; RailScheduled orders need a road leg.
type GetUnallocatedOrdersQueryResponse struct {
	ID              kernel.UUID
	DestinationCity string
	Street          string
	RequiredSpace   int
	Status          order.Status
}

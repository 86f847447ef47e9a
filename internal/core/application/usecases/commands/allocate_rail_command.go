package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAllocateRailCommandIsNotConstructed = errors.New(
	"AllocateRailCommand must be created via NewAllocateRailCommand constructor",
)

// AllocateRailCommand requests that a confirmed order's required space be
// committed against one rail trip chosen by the operator from the candidate
// list.
type AllocateRailCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	tripID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAllocateRailCommand creates a command to allocate an order to a rail trip.
func NewAllocateRailCommand(orderID, tripID kernel.UUID) (AllocateRailCommand, error) {
	if err := errors.Join(orderID.Validate(), tripID.Validate()); err != nil {
		return AllocateRailCommand{}, err
	}

	return AllocateRailCommand{
		orderID: orderID,
		tripID:  tripID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AllocateRailCommand) Validate() error {
	return c.guard.Validate(ErrAllocateRailCommandIsNotConstructed)
}

// OrderID returns the order to allocate.
func (c AllocateRailCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TripID returns the rail trip chosen to carry the order.
func (c AllocateRailCommand) TripID() kernel.UUID {
	return c.tripID
}

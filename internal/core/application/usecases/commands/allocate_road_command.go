package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAllocateRoadCommandIsNotConstructed = errors.New(
	"AllocateRoadCommand must be created via NewAllocateRoadCommand constructor",
)

// AllocateRoadCommand requests that a rail-scheduled order's required space be
// committed against one road run chosen by the operator.
type AllocateRoadCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	runID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAllocateRoadCommand creates a command to allocate an order to a road run.
func NewAllocateRoadCommand(orderID, runID kernel.UUID) (AllocateRoadCommand, error) {
	if err := errors.Join(orderID.Validate(), runID.Validate()); err != nil {
		return AllocateRoadCommand{}, err
	}

	return AllocateRoadCommand{
		orderID: orderID,
		runID:   runID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AllocateRoadCommand) Validate() error {
	return c.guard.Validate(ErrAllocateRoadCommandIsNotConstructed)
}

// OrderID returns the order to allocate.
func (c AllocateRoadCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RunID returns the road run chosen to carry the order.
func (c AllocateRoadCommand) RunID() kernel.UUID {
	return c.runID
}

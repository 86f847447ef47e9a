package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCancelAllocationCommandIsNotConstructed = errors.New(
	"CancelAllocationCommand must be created via NewCancelAllocationCommand constructor",
)

// CancelAllocationCommand requests that one shipment leg be cancelled and the
// exact space it held returned to its trip or run. Crew reservations are not
// touched: cancelling road legs leaves the run and its crew booking in place.
type CancelAllocationCommand struct { //nolint:recvcheck //using for validation
	legID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelAllocationCommand creates a command to cancel a shipment leg.
func NewCancelAllocationCommand(legID kernel.UUID) (CancelAllocationCommand, error) {
	if err := legID.Validate(); err != nil {
		return CancelAllocationCommand{}, err
	}

	return CancelAllocationCommand{
		legID: legID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelAllocationCommand) Validate() error {
	return c.guard.Validate(ErrCancelAllocationCommandIsNotConstructed)
}

// LegID returns the shipment leg to cancel.
func (c CancelAllocationCommand) LegID() kernel.UUID {
	return c.legID
}

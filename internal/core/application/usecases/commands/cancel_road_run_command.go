package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCancelRoadRunCommandIsNotConstructed = errors.New(
	"CancelRoadRunCommand must be created via NewCancelRoadRunCommand constructor",
)

// CancelRoadRunCommand requests that an empty road run be removed from the
// schedule, releasing its crew reservations for the run's window.
type CancelRoadRunCommand struct { //nolint:recvcheck //using for validation
	runID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelRoadRunCommand creates a command to cancel a road run.
func NewCancelRoadRunCommand(runID kernel.UUID) (CancelRoadRunCommand, error) {
	if err := runID.Validate(); err != nil {
		return CancelRoadRunCommand{}, err
	}

	return CancelRoadRunCommand{
		runID: runID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelRoadRunCommand) Validate() error {
	return c.guard.Validate(ErrCancelRoadRunCommandIsNotConstructed)
}

// RunID returns the run to cancel.
func (c CancelRoadRunCommand) RunID() kernel.UUID {
	return c.runID
}

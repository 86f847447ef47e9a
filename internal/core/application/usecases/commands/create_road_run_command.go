package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateRoadRunCommandIsNotConstructed = errors.New(
		"CreateRoadRunCommand must be created via NewCreateRoadRunCommand constructor",
	)
	ErrRunCapacityIsInvalid = errors.New("run capacity must be greater than 0")
)

// CreateRoadRunCommand requests a new truck departure over a road route,
// staffed by a driver and an assistant for a fixed window. Creating the run
// reserves all three crew members for the window; the reservation succeeds
// only if every one of them is free.
type CreateRoadRunCommand struct { //nolint:recvcheck //using for validation
	runID         kernel.UUID
	routeID       kernel.UUID
	truckID       kernel.UUID
	driverID      kernel.UUID
	assistantID   kernel.UUID
	window        kernel.TimeWindow
	totalCapacity int

	guard guard.ConstructorGuard
}

// NewCreateRoadRunCommand creates a command to schedule a new road run.
func NewCreateRoadRunCommand(
	runID, routeID, truckID, driverID, assistantID kernel.UUID,
	window kernel.TimeWindow,
	totalCapacity int,
) (CreateRoadRunCommand, error) {
	if err := errors.Join(
		runID.Validate(),
		routeID.Validate(),
		truckID.Validate(),
		driverID.Validate(),
		assistantID.Validate(),
		window.Validate(),
	); err != nil {
		return CreateRoadRunCommand{}, err
	}

	if totalCapacity <= 0 {
		return CreateRoadRunCommand{}, ErrRunCapacityIsInvalid
	}

	return CreateRoadRunCommand{
		runID:         runID,
		routeID:       routeID,
		truckID:       truckID,
		driverID:      driverID,
		assistantID:   assistantID,
		window:        window,
		totalCapacity: totalCapacity,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRoadRunCommand) Validate() error {
	return c.guard.Validate(ErrCreateRoadRunCommandIsNotConstructed)
}

// RunID returns the identifier of the run to create.
func (c CreateRoadRunCommand) RunID() kernel.UUID {
	return c.runID
}

// RouteID returns the road route the run covers.
func (c CreateRoadRunCommand) RouteID() kernel.UUID {
	return c.routeID
}

// TruckID returns the fleet registry reference of the truck.
func (c CreateRoadRunCommand) TruckID() kernel.UUID {
	return c.truckID
}

// DriverID returns the roster reference of the driver.
func (c CreateRoadRunCommand) DriverID() kernel.UUID {
	return c.driverID
}

// AssistantID returns the roster reference of the assistant.
func (c CreateRoadRunCommand) AssistantID() kernel.UUID {
	return c.assistantID
}

// Window returns the period the crew is requested for.
func (c CreateRoadRunCommand) Window() kernel.TimeWindow {
	return c.window
}

// TotalCapacity returns the run's fixed capacity in volume units.
func (c CreateRoadRunCommand) TotalCapacity() int {
	return c.totalCapacity
}

// Package roadrun implements the RoadRun aggregate: one scheduled last-mile
// departure of a truck over a road route, staffed by a driver and an
// assistant, with a fixed time window and a capacity ledger.
//
// Creating a run reserves its crew (truck, driver, assistant) for the run's
// window; those reservations outlive individual order cancellations and are
// only released when the run itself is cancelled.
package roadrun

import (
	"errors"

	"dispatch/internal/core/domain/model/capacity"
	"dispatch/internal/core/domain/model/kernel"
)

var (
	// ErrRoadRunIsNotConstructed is returned when a RoadRun instance was not
	// created through the NewRoadRun or RestoreRoadRun factory methods.
	ErrRoadRunIsNotConstructed = errors.New("RoadRun must be created via NewRoadRun or RestoreRoadRun constructor")
)

// RoadRun is a schedulable resource: one truck departure with fixed capacity,
// a fixed crew, and a fixed time window. Committed capacity is mutated only by
// the allocation coordinator under a per-run lock.
type RoadRun struct {
	// id is the unique identifier for the run
	id kernel.UUID

	// routeID references the road route whose serviced cities the run covers
	routeID kernel.UUID

	// truckID, driverID and assistantID reference the crew in the fleet registry
	truckID     kernel.UUID
	driverID    kernel.UUID
	assistantID kernel.UUID

	// window is the half-open period the crew is booked for
	window kernel.TimeWindow

	// ledger tracks committed versus total capacity
	ledger capacity.Ledger

	// isConstructed ensures the run was created via a factory
	isConstructed bool
}

// NewRoadRun creates a run with an empty ledger.
// All crew references must be valid and total capacity must be positive.
// The crew members must be pairwise distinct entities within their classes:
// driver and assistant are different people by definition of the roster, which
// is the registry's concern, not validated here.
func NewRoadRun(
	id, routeID, truckID, driverID, assistantID kernel.UUID,
	window kernel.TimeWindow,
	totalCapacity int,
) (*RoadRun, error) {
	ledger, err := capacity.NewLedger(totalCapacity)
	if err != nil {
		return nil, err
	}

	return restore(id, routeID, truckID, driverID, assistantID, window, ledger)
}

// RestoreRoadRun reconstructs a run from persistence, including its committed
// capacity.
func RestoreRoadRun(
	id, routeID, truckID, driverID, assistantID kernel.UUID,
	window kernel.TimeWindow,
	totalCapacity, committed int,
) (*RoadRun, error) {
	ledger, err := capacity.RestoreLedger(totalCapacity, committed)
	if err != nil {
		return nil, err
	}

	return restore(id, routeID, truckID, driverID, assistantID, window, ledger)
}

func restore(
	id, routeID, truckID, driverID, assistantID kernel.UUID,
	window kernel.TimeWindow,
	ledger capacity.Ledger,
) (*RoadRun, error) {
	if err := errors.Join(
		id.Validate(),
		routeID.Validate(),
		truckID.Validate(),
		driverID.Validate(),
		assistantID.Validate(),
		window.Validate(),
	); err != nil {
		return nil, err
	}

	return &RoadRun{
		id:            id,
		routeID:       routeID,
		truckID:       truckID,
		driverID:      driverID,
		assistantID:   assistantID,
		window:        window,
		ledger:        ledger,
		isConstructed: true,
	}, nil
}

// Validate ensures the RoadRun was properly constructed through a factory.
func (r *RoadRun) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRoadRunIsNotConstructed
	}
	return nil
}

// ID returns the run's unique identifier.
func (r *RoadRun) ID() kernel.UUID {
	return r.id
}

// RouteID returns the road route the run covers.
func (r *RoadRun) RouteID() kernel.UUID {
	return r.routeID
}

// TruckID returns the fleet registry reference of the truck.
func (r *RoadRun) TruckID() kernel.UUID {
	return r.truckID
}

// DriverID returns the roster reference of the driver.
func (r *RoadRun) DriverID() kernel.UUID {
	return r.driverID
}

// AssistantID returns the roster reference of the assistant.
func (r *RoadRun) AssistantID() kernel.UUID {
	return r.assistantID
}

// Window returns the half-open period the crew is booked for.
func (r *RoadRun) Window() kernel.TimeWindow {
	return r.window
}

// TotalCapacity returns the run's fixed capacity.
func (r *RoadRun) TotalCapacity() int {
	return r.ledger.Total()
}

// CommittedCapacity returns the space already promised to orders.
func (r *RoadRun) CommittedCapacity() int {
	return r.ledger.Committed()
}

// RemainingCapacity returns the space still available. Advisory outside a
// per-run lock.
func (r *RoadRun) RemainingCapacity() int {
	return r.ledger.Remaining()
}

// Commit reserves amount units on the run.
// Fails with capacity.ErrCapacityExceeded when the amount does not fit.
func (r *RoadRun) Commit(amount int) error {
	ledger, err := r.ledger.TryCommit(amount)
	if err != nil {
		return err
	}

	r.ledger = ledger
	return nil
}

// Release returns amount units to the run when a leg is cancelled.
// Fails with capacity.ErrInvariantViolation when more is released than was
// committed.
func (r *RoadRun) Release(amount int) error {
	ledger, err := r.ledger.Release(amount)
	if err != nil {
		return err
	}

	r.ledger = ledger
	return nil
}

// CrewMember returns the crew reference for one entity class.
func (r *RoadRun) CrewMember(class EntityClass) kernel.UUID {
	switch class {
	case Truck:
		return r.truckID
	case Driver:
		return r.driverID
	case Assistant:
		return r.assistantID
	default:
		return kernel.UUID{}
	}
}

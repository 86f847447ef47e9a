// Package trip implements the RailTrip aggregate: one scheduled long-haul
// departure of a train over a route, with a fixed total capacity tracked by a
// capacity ledger.
package trip

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/capacity"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrRailTripIsNotConstructed is returned when a RailTrip instance was not
	// created through the NewRailTrip or RestoreRailTrip factory methods.
	ErrRailTripIsNotConstructed = errors.New("RailTrip must be created via NewRailTrip or RestoreRailTrip constructor")
)

// RailTrip is a schedulable resource: one train departure with fixed capacity.
// Committed capacity is mutated only by the allocation coordinator, always
// under a per-trip lock, so the ledger invariant holds across concurrent
// allocation attempts.
type RailTrip struct {
	// id is the unique identifier for the trip
	id kernel.UUID

	// trainID references the train in the fleet registry
	trainID kernel.UUID

	// routeID references the rail route whose stop sequence the trip follows
	routeID kernel.UUID

	// departure and arrival bound the trip in time
	departure time.Time
	arrival   time.Time

	// ledger tracks committed versus total capacity
	ledger capacity.Ledger

	// isConstructed ensures the trip was created via a factory
	isConstructed bool
}

// NewRailTrip creates a trip with an empty ledger.
// Departure must precede arrival and total capacity must be positive.
func NewRailTrip(
	id, trainID, routeID kernel.UUID, departure, arrival time.Time, totalCapacity int,
) (*RailTrip, error) {
	ledger, err := capacity.NewLedger(totalCapacity)
	if err != nil {
		return nil, err
	}

	return restore(id, trainID, routeID, departure, arrival, ledger)
}

// RestoreRailTrip reconstructs a trip from persistence, including its
// committed capacity.
func RestoreRailTrip(
	id, trainID, routeID kernel.UUID, departure, arrival time.Time, totalCapacity, committed int,
) (*RailTrip, error) {
	ledger, err := capacity.RestoreLedger(totalCapacity, committed)
	if err != nil {
		return nil, err
	}

	return restore(id, trainID, routeID, departure, arrival, ledger)
}

func restore(
	id, trainID, routeID kernel.UUID, departure, arrival time.Time, ledger capacity.Ledger,
) (*RailTrip, error) {
	if err := errors.Join(id.Validate(), trainID.Validate(), routeID.Validate()); err != nil {
		return nil, err
	}
	if departure.IsZero() || arrival.IsZero() || !departure.Before(arrival) {
		return nil, errs.NewValueIsInvalidError("trip schedule: departure must precede arrival")
	}

	return &RailTrip{
		id:            id,
		trainID:       trainID,
		routeID:       routeID,
		departure:     departure,
		arrival:       arrival,
		ledger:        ledger,
		isConstructed: true,
	}, nil
}

// Validate ensures the RailTrip was properly constructed through a factory.
func (t *RailTrip) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrRailTripIsNotConstructed
	}
	return nil
}

// ID returns the trip's unique identifier.
func (t *RailTrip) ID() kernel.UUID {
	return t.id
}

// TrainID returns the fleet registry reference of the train.
func (t *RailTrip) TrainID() kernel.UUID {
	return t.trainID
}

// RouteID returns the rail route the trip follows.
func (t *RailTrip) RouteID() kernel.UUID {
	return t.routeID
}

// Departure returns the scheduled departure time.
func (t *RailTrip) Departure() time.Time {
	return t.departure
}

// Arrival returns the scheduled arrival time.
func (t *RailTrip) Arrival() time.Time {
	return t.arrival
}

// TotalCapacity returns the trip's fixed capacity.
func (t *RailTrip) TotalCapacity() int {
	return t.ledger.Total()
}

// CommittedCapacity returns the space already promised to orders.
func (t *RailTrip) CommittedCapacity() int {
	return t.ledger.Committed()
}

// RemainingCapacity returns the space still available. Advisory outside a
// per-trip lock.
func (t *RailTrip) RemainingCapacity() int {
	return t.ledger.Remaining()
}

// Commit reserves amount units on the trip.
// Fails with capacity.ErrCapacityExceeded when the amount does not fit;
// the trip is unchanged on failure.
func (t *RailTrip) Commit(amount int) error {
	ledger, err := t.ledger.TryCommit(amount)
	if err != nil {
		return err
	}

	t.ledger = ledger
	return nil
}

// Release returns amount units to the trip when a leg is cancelled.
// Fails with capacity.ErrInvariantViolation when more is released than was
// committed.
func (t *RailTrip) Release(amount int) error {
	ledger, err := t.ledger.Release(amount)
	if err != nil {
		return err
	}

	t.ledger = ledger
	return nil
}

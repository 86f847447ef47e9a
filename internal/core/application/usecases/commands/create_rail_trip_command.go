package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateRailTripCommandIsNotConstructed = errors.New(
		"CreateRailTripCommand must be created via NewCreateRailTripCommand constructor",
	)
	ErrTripCapacityIsInvalid = errors.New("trip capacity must be greater than 0")
	ErrTripScheduleIsInvalid = errors.New("trip departure must be before arrival")
)

// CreateRailTripCommand requests a new train departure over a rail route with
// a fixed capacity. Trips do not hold crew reservations; trains are scheduled
// by the rail operator and a trip is only a capacity pool over a schedule.
type CreateRailTripCommand struct { //nolint:recvcheck //using for validation
	tripID        kernel.UUID
	trainID       kernel.UUID
	routeID       kernel.UUID
	departure     time.Time
	arrival       time.Time
	totalCapacity int

	guard guard.ConstructorGuard
}

// NewCreateRailTripCommand creates a command to schedule a new rail trip.
func NewCreateRailTripCommand(
	tripID, trainID, routeID kernel.UUID,
	departure, arrival time.Time,
	totalCapacity int,
) (CreateRailTripCommand, error) {
	if err := errors.Join(
		tripID.Validate(),
		trainID.Validate(),
		routeID.Validate(),
	); err != nil {
		return CreateRailTripCommand{}, err
	}

	if departure.IsZero() || arrival.IsZero() || !departure.Before(arrival) {
		return CreateRailTripCommand{}, ErrTripScheduleIsInvalid
	}

	if totalCapacity <= 0 {
		return CreateRailTripCommand{}, ErrTripCapacityIsInvalid
	}

	return CreateRailTripCommand{
		tripID:        tripID,
		trainID:       trainID,
		routeID:       routeID,
		departure:     departure,
		arrival:       arrival,
		totalCapacity: totalCapacity,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRailTripCommand) Validate() error {
	return c.guard.Validate(ErrCreateRailTripCommandIsNotConstructed)
}

// TripID returns the identifier of the trip to create.
func (c CreateRailTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// TrainID returns the fleet registry reference of the train.
func (c CreateRailTripCommand) TrainID() kernel.UUID {
	return c.trainID
}

// RouteID returns the rail route the trip follows.
func (c CreateRailTripCommand) RouteID() kernel.UUID {
	return c.routeID
}

// Departure returns the scheduled departure time.
func (c CreateRailTripCommand) Departure() time.Time {
	return c.departure
}

// Arrival returns the scheduled arrival time.
func (c CreateRailTripCommand) Arrival() time.Time {
	return c.arrival
}

// TotalCapacity returns the trip's fixed capacity in volume units.
func (c CreateRailTripCommand) TotalCapacity() int {
	return c.totalCapacity
}

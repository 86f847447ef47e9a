package commands

import (
	"context"

	"dispatch/internal/core/domain/model/trip"
)

// CreateRailTripCommandHandler persists new rail trips arriving from the
// rail operator's schedule feed.
type CreateRailTripCommandHandler struct {
	uowFactory TripUoWFactory
}

// NewCreateRailTripCommandHandler creates a handler for rail trip scheduling.
func NewCreateRailTripCommandHandler(uowFactory TripUoWFactory) CreateRailTripCommandHandler {
	return CreateRailTripCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the trip aggregate with an empty ledger and persists it.
func (h CreateRailTripCommandHandler) Handle(ctx context.Context, command CreateRailTripCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newTrip, err := trip.NewRailTrip(
		command.TripID(),
		command.TrainID(),
		command.RouteID(),
		command.Departure(),
		command.Arrival(),
		command.TotalCapacity(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RailTripRepository().Add(ctx, newTrip); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/shipment"
)

// CancelAllocationCommandHandler reverses one allocation: the leg is deleted,
// the exact space it held returns to its trip or run, and the order's status
// steps back one stage.
//
// Releases are ordered road-first by the lifecycle itself: a RoadScheduled
// order refuses UnscheduleRail, so the rail leg can only be cancelled once
// the road leg is gone. Run crew reservations survive the cancellation; only
// CancelRoadRun releases a crew.
type CancelAllocationCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelAllocationCommandHandler creates a handler for leg cancellation.
func NewCancelAllocationCommandHandler(uowFactory UoWFactory) CancelAllocationCommandHandler {
	return CancelAllocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels the leg and restores capacity in one transaction.
func (h CancelAllocationCommandHandler) Handle(ctx context.Context, command CancelAllocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	legs := uow.ShipmentLegRepository()

	leg, err := legs.Get(ctx, command.LegID())
	if err != nil {
		return err
	}

	cancellingOrder, err := orders.GetForUpdate(ctx, leg.OrderID())
	if err != nil {
		return err
	}

	switch leg.Stage() {
	case shipment.Rail:
		if err = cancellingOrder.UnscheduleRail(); err != nil {
			return err
		}

		trips := uow.RailTripRepository()

		railTrip, tripErr := trips.GetForUpdate(ctx, leg.ResourceID())
		if tripErr != nil {
			return tripErr
		}
		if err = railTrip.Release(leg.Space()); err != nil {
			return err
		}
		if err = trips.Update(ctx, railTrip); err != nil {
			return err
		}

	case shipment.Road:
		if err = cancellingOrder.UnscheduleRoad(); err != nil {
			return err
		}

		runs := uow.RoadRunRepository()

		run, runErr := runs.GetForUpdate(ctx, leg.ResourceID())
		if runErr != nil {
			return runErr
		}
		if err = run.Release(leg.Space()); err != nil {
			return err
		}
		if err = runs.Update(ctx, run); err != nil {
			return err
		}

	default:
		return fmt.Errorf("leg %s has unknown stage %s", leg.ID(), leg.Stage())
	}

	if err = legs.Delete(ctx, leg.ID()); err != nil {
		return err
	}

	if err = orders.Update(ctx, cancellingOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

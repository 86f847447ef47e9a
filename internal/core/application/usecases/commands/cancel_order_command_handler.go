package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/shipment"
)

// CancelOrderCommandHandler withdraws an order and compensates every leg it
// holds. The whole cancellation is one transaction: either the order ends up
// Cancelled with all of its space returned, or nothing changes.
//
// Legs are compensated road-first, mirroring the order the lifecycle built
// them in reverse. Orders can be cancelled at any point before closure,
// including mid-transit; only delivered or already-cancelled orders are
// terminal and rejected by the state machine.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels the order, releasing all committed space.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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

	cancellingOrder, err := orders.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = cancellingOrder.Cancel(); err != nil {
		return err
	}

	orderLegs, err := legs.GetAllByOrder(ctx, cancellingOrder.ID())
	if err != nil {
		return err
	}

	for _, stage := range []shipment.Stage{shipment.Road, shipment.Rail} {
		for _, leg := range orderLegs {
			if leg.Stage() != stage {
				continue
			}
			if err = h.compensateLeg(ctx, uow, leg); err != nil {
				return err
			}
			if err = legs.Delete(ctx, leg.ID()); err != nil {
				return err
			}
		}
	}

	if err = orders.Update(ctx, cancellingOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CancelOrderCommandHandler) compensateLeg(
	ctx context.Context, uow UoW, leg *shipment.Leg,
) error {
	switch leg.Stage() {
	case shipment.Rail:
		trips := uow.RailTripRepository()

		railTrip, err := trips.GetForUpdate(ctx, leg.ResourceID())
		if err != nil {
			return err
		}
		if err = railTrip.Release(leg.Space()); err != nil {
			return err
		}
		return trips.Update(ctx, railTrip)

	case shipment.Road:
		runs := uow.RoadRunRepository()

		run, err := runs.GetForUpdate(ctx, leg.ResourceID())
		if err != nil {
			return err
		}
		if err = run.Release(leg.Space()); err != nil {
			return err
		}
		return runs.Update(ctx, run)

	default:
		return fmt.Errorf("leg %s has unknown stage %s", leg.ID(), leg.Stage())
	}
}

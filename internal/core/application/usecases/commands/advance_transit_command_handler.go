package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/shipment"
)

// AdvanceTransitCommandHandler drives the tail of the lifecycle from the
// clock: once a run's window opens its RoadScheduled orders go InTransit,
// and once the window closes they are Delivered.
//
// The handler processes whatever it can and skips orders whose road leg or
// run cannot be resolved; a single broken order must not stall the whole
// sweep. Skipped orders are retried on the next tick.
type AdvanceTransitCommandHandler struct {
	uowFactory UoWFactory
}

// NewAdvanceTransitCommandHandler creates a handler for transit progress.
func NewAdvanceTransitCommandHandler(uowFactory UoWFactory) AdvanceTransitCommandHandler {
	return AdvanceTransitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle advances every eligible order and returns how many changed status.
func (h AdvanceTransitCommandHandler) Handle(
	ctx context.Context, command AdvanceTransitCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	advanced := 0

	departed, err := h.advanceStatus(ctx, uow, order.RoadScheduled, command.Now())
	if err != nil {
		return 0, err
	}
	advanced += departed

	delivered, err := h.advanceStatus(ctx, uow, order.InTransit, command.Now())
	if err != nil {
		return 0, err
	}
	advanced += delivered

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return advanced, nil
}

func (h AdvanceTransitCommandHandler) advanceStatus(
	ctx context.Context, uow UoW, status order.Status, now time.Time,
) (int, error) {
	orders := uow.OrderRepository()
	legs := uow.ShipmentLegRepository()
	runs := uow.RoadRunRepository()

	eligible, err := orders.GetAllInStatus(ctx, status)
	if err != nil {
		return 0, err
	}

	advanced := 0

	for _, candidate := range eligible {
		leg, legErr := legs.GetByOrderAndStage(ctx, candidate.ID(), shipment.Road)
		if legErr != nil {
			continue
		}

		run, runErr := runs.Get(ctx, leg.ResourceID())
		if runErr != nil {
			continue
		}

		var transitionErr error
		switch status {
		case order.RoadScheduled:
			if !run.Window().Started(now) {
				continue
			}
			transitionErr = candidate.StartTransit()
		case order.InTransit:
			if !run.Window().Ended(now) {
				continue
			}
			transitionErr = candidate.MarkDelivered()
		default:
			continue
		}

		if transitionErr != nil {
			return 0, transitionErr
		}

		if err = orders.Update(ctx, candidate); err != nil {
			return 0, err
		}

		advanced++
	}

	return advanced, nil
}

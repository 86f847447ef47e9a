package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/pkg/errs"
)

// ErrAlreadyAllocated is returned when an order already holds an active leg
// for the requested stage.
var ErrAlreadyAllocated = errors.New("order already has an active leg for this stage")

// AllocateRailCommandHandler commits an order's space against a rail trip.
//
// The whole operation is one transaction over locked rows: the lifecycle
// precondition, the duplicate-leg check, and the trip's capacity
// check-and-commit happen as a single indivisible step per trip, so two
// concurrent allocations against the same trip can never jointly overcommit
// it. On any failure nothing is persisted and a typed reason is returned:
//
//	switch {
//	case errors.Is(err, order.ErrOrderNotConfirmed):   // wrong lifecycle state
//	case errors.Is(err, commands.ErrAlreadyAllocated): // duplicate rail leg
//	case errors.Is(err, capacity.ErrCapacityExceeded): // pick another trip
//	}
type AllocateRailCommandHandler struct {
	uowFactory UoWFactory
}

// NewAllocateRailCommandHandler creates a handler for rail allocation.
func NewAllocateRailCommandHandler(uowFactory UoWFactory) AllocateRailCommandHandler {
	return AllocateRailCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rail allocation and returns the created leg.
func (h AllocateRailCommandHandler) Handle(
	ctx context.Context, command AllocateRailCommand,
) (*shipment.Leg, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	trips := uow.RailTripRepository()
	legs := uow.ShipmentLegRepository()

	allocatingOrder, err := orders.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	// Lifecycle precondition: only Confirmed orders take a rail leg.
	if err = allocatingOrder.ScheduleRail(); err != nil {
		return nil, err
	}

	_, err = legs.GetByOrderAndStage(ctx, allocatingOrder.ID(), shipment.Rail)
	if err == nil {
		return nil, ErrAlreadyAllocated
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	railTrip, err := trips.GetForUpdate(ctx, command.TripID())
	if err != nil {
		return nil, err
	}

	if err = railTrip.Commit(allocatingOrder.RequiredSpace()); err != nil {
		return nil, err
	}

	leg, err := shipment.NewLeg(
		kernel.NewUUID(),
		allocatingOrder.ID(),
		shipment.Rail,
		railTrip.ID(),
		allocatingOrder.RequiredSpace(),
	)
	if err != nil {
		return nil, err
	}

	if err = trips.Update(ctx, railTrip); err != nil {
		return nil, err
	}

	if err = legs.Add(ctx, leg); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, allocatingOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return leg, nil
}

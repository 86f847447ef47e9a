package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/roadrun"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// AllocateRoadCommandHandler commits an order's space against a road run.
//
// The run's crew was reserved when the run was created, so assigning an order
// is a capacity commit plus a membership re-validation: the handler confirms
// the run's window is still exclusively held by its crew (no other run of the
// same truck, driver, or assistant overlaps it). A breach surfaces as
// services.ErrAvailabilityConflict rather than silently double-booking.
//
// The road leg always follows the rail leg: orders that skipped rail fail
// with order.ErrOrderNotRailScheduled and nothing is mutated.
type AllocateRoadCommandHandler struct {
	uowFactory UoWFactory
	guard      services.AvailabilityGuard
}

// NewAllocateRoadCommandHandler creates a handler for road allocation.
func NewAllocateRoadCommandHandler(uowFactory UoWFactory) AllocateRoadCommandHandler {
	return AllocateRoadCommandHandler{
		uowFactory: uowFactory,
		guard:      services.NewAvailabilityGuard(),
	}
}

// Handle processes the road allocation and returns the created leg.
func (h AllocateRoadCommandHandler) Handle(
	ctx context.Context, command AllocateRoadCommand,
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
	runs := uow.RoadRunRepository()
	legs := uow.ShipmentLegRepository()

	allocatingOrder, err := orders.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	// Lifecycle precondition: the road leg follows a committed rail leg.
	if err = allocatingOrder.ScheduleRoad(); err != nil {
		return nil, err
	}

	_, err = legs.GetByOrderAndStage(ctx, allocatingOrder.ID(), shipment.Road)
	if err == nil {
		return nil, ErrAlreadyAllocated
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	run, err := runs.GetForUpdate(ctx, command.RunID())
	if err != nil {
		return nil, err
	}

	if err = run.Commit(allocatingOrder.RequiredSpace()); err != nil {
		return nil, err
	}

	// Membership check: the crew reservations made at run creation must still
	// exclusively cover this run's window.
	for _, class := range roadrun.AllEntityClasses() {
		busy, busyErr := runs.GetBusyWindows(ctx, class, run.CrewMember(class), run.ID())
		if busyErr != nil {
			return nil, busyErr
		}
		if conflict, found := h.guard.FindConflict(busy, run.Window()); found {
			return nil, fmt.Errorf(
				"%s %s is booked for %s overlapping run window %s: %w",
				class, run.CrewMember(class), conflict, run.Window(), services.ErrAvailabilityConflict,
			)
		}
	}

	leg, err := shipment.NewLeg(
		kernel.NewUUID(),
		allocatingOrder.ID(),
		shipment.Road,
		run.ID(),
		allocatingOrder.RequiredSpace(),
	)
	if err != nil {
		return nil, err
	}

	if err = runs.Update(ctx, run); err != nil {
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

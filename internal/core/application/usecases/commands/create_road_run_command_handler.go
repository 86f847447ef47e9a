package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/roadrun"
	"dispatch/internal/core/domain/services"
)

// CreateRoadRunCommandHandler schedules new road runs, reserving the truck,
// driver, and assistant for the run's window in one atomic step.
//
// The three availability checks and the insert happen inside one transaction,
// and each check holds an exclusive lock on its crew entity until commit, so
// two concurrent runs that share any crew member for overlapping windows
// cannot both pass the overlap check. When any
// crew member is busy the whole reservation fails with
// services.ErrAvailabilityConflict and no partial booking survives.
type CreateRoadRunCommandHandler struct {
	uowFactory RunUoWFactory
	guard      services.AvailabilityGuard
}

// NewCreateRoadRunCommandHandler creates a handler for road run scheduling.
func NewCreateRoadRunCommandHandler(uowFactory RunUoWFactory) CreateRoadRunCommandHandler {
	return CreateRoadRunCommandHandler{
		uowFactory: uowFactory,
		guard:      services.NewAvailabilityGuard(),
	}
}

// Handle reserves the crew and persists the new run.
func (h CreateRoadRunCommandHandler) Handle(ctx context.Context, command CreateRoadRunCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	run, err := roadrun.NewRoadRun(
		command.RunID(),
		command.RouteID(),
		command.TruckID(),
		command.DriverID(),
		command.AssistantID(),
		command.Window(),
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

	runs := uow.RoadRunRepository()

	// All three crew members must be free; the first conflict aborts the
	// reservation.
	for _, class := range roadrun.AllEntityClasses() {
		busy, busyErr := runs.GetBusyWindows(ctx, class, run.CrewMember(class), kernel.UUID{})
		if busyErr != nil {
			return busyErr
		}
		if conflict, found := h.guard.FindConflict(busy, run.Window()); found {
			return fmt.Errorf(
				"%s %s is booked for %s overlapping requested window %s: %w",
				class, run.CrewMember(class), conflict, run.Window(), services.ErrAvailabilityConflict,
			)
		}
	}

	if err = runs.Add(ctx, run); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

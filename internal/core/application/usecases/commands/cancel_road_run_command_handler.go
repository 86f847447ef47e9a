package commands

import (
	"context"
	"errors"
	"fmt"
)

// ErrRoadRunNotEmpty is returned when a run still carries committed space.
// The operator must cancel or reassign every leg on the run first.
var ErrRoadRunNotEmpty = errors.New("road run still has committed space")

// CancelRoadRunCommandHandler removes empty runs from the schedule. Deleting
// the run is what frees its crew: busy intervals are derived from run rows,
// so the truck, driver, and assistant become available for the window the
// moment the row is gone.
type CancelRoadRunCommandHandler struct {
	uowFactory RunUoWFactory
}

// NewCancelRoadRunCommandHandler creates a handler for road run cancellation.
func NewCancelRoadRunCommandHandler(uowFactory RunUoWFactory) CancelRoadRunCommandHandler {
	return CancelRoadRunCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes the run after verifying no space is committed on it.
func (h CancelRoadRunCommandHandler) Handle(ctx context.Context, command CancelRoadRunCommand) error {
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

	runs := uow.RoadRunRepository()

	run, err := runs.GetForUpdate(ctx, command.RunID())
	if err != nil {
		return err
	}

	if run.CommittedCapacity() > 0 {
		return fmt.Errorf("run %s holds %d committed units: %w",
			run.ID(), run.CommittedCapacity(), ErrRoadRunNotEmpty)
	}

	if err = runs.Delete(ctx, run.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

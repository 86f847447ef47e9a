package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/roadrun"
)

// RoadRunRepository defines the persistence contract for road run aggregates.
// Busy intervals for trucks, drivers, and assistants are derived from run
// rows, never stored separately, so this repository is also the availability
// index's source of truth.
type RoadRunRepository interface {
	// Add persists a new run aggregate to storage.
	Add(ctx context.Context, aggregate *roadrun.RoadRun) error

	// Update persists changes to an existing run aggregate.
	Update(ctx context.Context, aggregate *roadrun.RoadRun) error

	// Delete removes a run whose crew reservations are being released.
	// Callers must first verify the run carries no committed space.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a run aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*roadrun.RoadRun, error)

	// GetForUpdate retrieves a run while holding a per-row lock for the
	// remainder of the surrounding transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*roadrun.RoadRun, error)

	// GetBusyWindows returns the time windows of every run the given crew
	// entity is committed to, excluding runs with id excludeRunID (pass the
	// zero UUID to exclude nothing). Implementations must take an exclusive
	// per-entity lock scoped to the surrounding transaction before reading,
	// so concurrent reservations of the same entity serialize even when the
	// entity has no runs yet to lock by row.
	GetBusyWindows(
		ctx context.Context,
		class roadrun.EntityClass,
		entityID kernel.UUID,
		excludeRunID kernel.UUID,
	) ([]kernel.TimeWindow, error)
}

package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/trip"
)

// RailTripRepository defines the persistence contract for rail trip aggregates.
type RailTripRepository interface {
	// Add persists a new trip aggregate to storage.
	Add(ctx context.Context, aggregate *trip.RailTrip) error

	// Update persists changes to an existing trip aggregate.
	Update(ctx context.Context, aggregate *trip.RailTrip) error

	// Get retrieves a trip aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*trip.RailTrip, error)

	// GetForUpdate retrieves a trip while holding a per-row lock for the
	// remainder of the surrounding transaction, making the trip's capacity
	// check-and-commit linearizable across concurrent allocation attempts.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*trip.RailTrip, error)
}

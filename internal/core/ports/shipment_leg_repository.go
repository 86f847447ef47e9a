package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
)

// ShipmentLegRepository defines the persistence contract for shipment legs.
// A leg row is created in the same transaction as its ledger commit and
// deleted in the same transaction as the compensating release, so the table
// always mirrors the committed capacity exactly.
type ShipmentLegRepository interface {
	// Add persists a new leg.
	Add(ctx context.Context, leg *shipment.Leg) error

	// Delete removes a cancelled leg.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a leg by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Leg, error)

	// GetByOrderAndStage retrieves the order's active leg for one stage.
	// Returns errs.ErrObjectNotFound when the order has no leg for the stage,
	// which is how allocation handlers detect duplicates.
	GetByOrderAndStage(ctx context.Context, orderID kernel.UUID, stage shipment.Stage) (*shipment.Leg, error)

	// GetAllByOrder retrieves every active leg held by an order.
	// Used by order cancellation to run compensations.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Leg, error)
}

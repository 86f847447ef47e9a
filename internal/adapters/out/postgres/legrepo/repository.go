package legrepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentLegRepository implements ShipmentLegRepository using GORM.
// Legs are immutable once written; the repository only inserts, reads, and
// deletes.
type GormShipmentLegRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentLegRepository creates a new GORM shipment leg repository.
func NewGormShipmentLegRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentLegRepository {
	return &GormShipmentLegRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new leg to the database.
func (r *GormShipmentLegRepository) Add(ctx context.Context, leg *shipment.Leg) error {
	if err := leg.Validate(); err != nil {
		return err
	}

	dto := fromDomain(leg)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(leg.ID(), leg)
	return nil
}

// Delete removes a cancelled leg.
func (r *GormShipmentLegRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ShipmentLegDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment leg", id.String())
	}

	return nil
}

// Get retrieves a leg by ID.
func (r *GormShipmentLegRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Leg, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentLegDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment leg", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderAndStage retrieves the order's active leg for one stage.
func (r *GormShipmentLegRepository) GetByOrderAndStage(
	ctx context.Context, orderID kernel.UUID, stage shipment.Stage,
) (*shipment.Leg, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := stage.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentLegDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND stage = ?", orderID.Bytes(), int(stage)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(
				"shipment leg",
				fmt.Sprintf("order %s stage %s", orderID, stage),
			)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves every active leg held by an order.
func (r *GormShipmentLegRepository) GetAllByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*shipment.Leg, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentLegDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	legs := make([]*shipment.Leg, 0, len(dtos))
	for _, dto := range dtos {
		leg, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}

	return legs, nil
}

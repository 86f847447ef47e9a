// Package legrepo provides data transfer objects and mapping functions for
// shipment leg persistence. Leg rows are written and deleted only inside the
// transaction that moves the matching committed capacity, so the table
// mirrors the ledgers exactly.
package legrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentLegDTO represents the database structure for persisting legs.
// (OrderID, Stage) is unique: one active leg per order per stage.
type ShipmentLegDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_legs_order_stage"`
	Stage      int       `gorm:"uniqueIndex:idx_legs_order_stage"`
	ResourceID uuid.UUID `gorm:"type:uuid;index"`
	Space      int
}

// TableName specifies the database table name for shipment leg entities.
func (ShipmentLegDTO) TableName() string {
	return "shipment_legs"
}

// fromDomain converts a leg domain entity to its database representation.
func fromDomain(leg *shipment.Leg) ShipmentLegDTO {
	return ShipmentLegDTO{
		ID:         leg.ID().Bytes(),
		OrderID:    leg.OrderID().Bytes(),
		Stage:      int(leg.Stage()),
		ResourceID: leg.ResourceID().Bytes(),
		Space:      leg.Space(),
	}
}

// toDomain converts a database DTO to a leg domain entity.
func toDomain(dto ShipmentLegDTO) (*shipment.Leg, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	resourceID, err := kernel.UUIDFromBytes(dto.ResourceID[:])
	if err != nil {
		return nil, err
	}

	return shipment.RestoreLeg(id, orderID, shipment.Stage(dto.Stage), resourceID, dto.Space)
}

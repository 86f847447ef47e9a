// Package triprepo provides data transfer objects and mapping functions for
// rail trip persistence.
package triprepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/trip"

	"github.com/google/uuid"
)

// RailTripDTO represents the database structure for persisting rail trips.
// TotalCapacity and CommittedCapacity back the trip's ledger; the row is
// always read FOR UPDATE before the committed value is changed.
type RailTripDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrainID           uuid.UUID `gorm:"type:uuid;index"`
	RouteID           uuid.UUID `gorm:"type:uuid;index"`
	Departure         time.Time
	Arrival           time.Time
	TotalCapacity     int
	CommittedCapacity int
}

// TableName specifies the database table name for rail trip entities.
func (RailTripDTO) TableName() string {
	return "rail_trips"
}

// fromDomain converts a trip domain aggregate to its database representation.
func fromDomain(aggregate *trip.RailTrip) RailTripDTO {
	return RailTripDTO{
		ID:                aggregate.ID().Bytes(),
		TrainID:           aggregate.TrainID().Bytes(),
		RouteID:           aggregate.RouteID().Bytes(),
		Departure:         aggregate.Departure(),
		Arrival:           aggregate.Arrival(),
		TotalCapacity:     aggregate.TotalCapacity(),
		CommittedCapacity: aggregate.CommittedCapacity(),
	}
}

// toDomain converts a database DTO to a trip domain aggregate.
func toDomain(dto RailTripDTO) (*trip.RailTrip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trainID, err := kernel.UUIDFromBytes(dto.TrainID[:])
	if err != nil {
		return nil, err
	}

	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}

	return trip.RestoreRailTrip(
		id,
		trainID,
		routeID,
		dto.Departure,
		dto.Arrival,
		dto.TotalCapacity,
		dto.CommittedCapacity,
	)
}

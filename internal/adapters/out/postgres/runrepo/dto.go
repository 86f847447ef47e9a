// Package runrepo provides data transfer objects and mapping functions for
// road run persistence. Run rows double as the availability index: a crew
// entity's busy intervals are the windows of the runs referencing it, so
// reserving a crew is inserting a row and releasing it is deleting one.
package runrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/roadrun"

	"github.com/google/uuid"
)

// RoadRunDTO represents the database structure for persisting road runs.
// The crew columns are indexed for the overlap queries behind GetBusyWindows.
type RoadRunDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	RouteID           uuid.UUID `gorm:"type:uuid;index"`
	TruckID           uuid.UUID `gorm:"type:uuid;index"`
	DriverID          uuid.UUID `gorm:"type:uuid;index"`
	AssistantID       uuid.UUID `gorm:"type:uuid;index"`
	StartTime         time.Time
	EndTime           time.Time
	TotalCapacity     int
	CommittedCapacity int
}

// TableName specifies the database table name for road run entities.
func (RoadRunDTO) TableName() string {
	return "road_runs"
}

// fromDomain converts a run domain aggregate to its database representation.
func fromDomain(aggregate *roadrun.RoadRun) RoadRunDTO {
	return RoadRunDTO{
		ID:                aggregate.ID().Bytes(),
		RouteID:           aggregate.RouteID().Bytes(),
		TruckID:           aggregate.TruckID().Bytes(),
		DriverID:          aggregate.DriverID().Bytes(),
		AssistantID:       aggregate.AssistantID().Bytes(),
		StartTime:         aggregate.Window().Start(),
		EndTime:           aggregate.Window().End(),
		TotalCapacity:     aggregate.TotalCapacity(),
		CommittedCapacity: aggregate.CommittedCapacity(),
	}
}

// toDomain converts a database DTO to a run domain aggregate.
func toDomain(dto RoadRunDTO) (*roadrun.RoadRun, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}

	truckID, err := kernel.UUIDFromBytes(dto.TruckID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	assistantID, err := kernel.UUIDFromBytes(dto.AssistantID[:])
	if err != nil {
		return nil, err
	}

	window, err := kernel.NewTimeWindow(dto.StartTime, dto.EndTime)
	if err != nil {
		return nil, err
	}

	return roadrun.RestoreRoadRun(
		id,
		routeID,
		truckID,
		driverID,
		assistantID,
		window,
		dto.TotalCapacity,
		dto.CommittedCapacity,
	)
}

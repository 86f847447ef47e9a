// Package routerepo holds the database structures for route reference data.
// Routes are owned by the fleet registry and are read-only here: the
// candidate queries read them (through the route cache) and nothing in this
// service writes them outside of migrations and seeding.
package routerepo

import (
	"github.com/google/uuid"
)

// RailRouteDTO represents a rail route with its ordered stop list stored as
// delimited text ("City A|City B|City C").
type RailRouteDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Stops string
}

// TableName specifies the database table name for rail routes.
func (RailRouteDTO) TableName() string {
	return "rail_routes"
}

// RoadRouteDTO represents a road route with its serviced cities stored as
// delimited text.
type RoadRouteDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string
	Cities string
}

// TableName specifies the database table name for road routes.
func (RoadRouteDTO) TableName() string {
	return "road_routes"
}

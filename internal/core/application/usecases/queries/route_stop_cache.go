// Package queries contains read-only operations for retrieving dispatch
// state. Implements the query side of the CQRS pattern using raw SQL reads
// over the same database the command side writes, bypassing the domain
// aggregates. Capacity snapshots returned here are advisory: the allocation
// coordinator re-validates everything under a lock before committing.
package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// Route kinds partition the stop cache keyspace.
const (
	RouteKindRail = "rail"
	RouteKindRoad = "road"
)

// RouteStopCache caches route stop and serviced-city lists keyed by route.
// Route rows are reference data owned by the fleet registry and change
// rarely, so candidate queries read stops through this cache instead of
// re-joining the route table on every request.
type RouteStopCache interface {
	// GetStops returns the cached stop list for a route.
	// Returns errs.ErrObjectNotFound on a cache miss.
	GetStops(ctx context.Context, kind string, routeID kernel.UUID) ([]string, error)

	// SetStops stores the stop list for a route.
	SetStops(ctx context.Context, kind string, routeID kernel.UUID, stops []string) error
}

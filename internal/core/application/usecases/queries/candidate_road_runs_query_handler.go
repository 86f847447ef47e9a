package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CandidateRoadRunsQueryHandler retrieves feasible road runs for a
// destination. Runs and their remaining capacity come from a raw SQL read;
// serviced-city lists come through the route cache, falling back to the
// route table on a miss.
type CandidateRoadRunsQueryHandler struct {
	db      *gorm.DB
	cache   RouteStopCache
	matcher services.RouteMatcher
}

// NewCandidateRoadRunsQueryHandler creates a handler for road candidate queries.
func NewCandidateRoadRunsQueryHandler(db *gorm.DB, cache RouteStopCache) CandidateRoadRunsQueryHandler {
	return CandidateRoadRunsQueryHandler{
		db:      db,
		cache:   cache,
		matcher: services.NewRouteMatcher(),
	}
}

// Handle executes the query and returns matching runs in ranked order.
func (h CandidateRoadRunsQueryHandler) Handle(
	ctx context.Context,
	query CandidateRoadRunsQuery,
) ([]CandidateRoadRunsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]services.RunCandidate, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			rr.id,
			rr.route_id,
			r.name,
			rr.start_time,
			rr.total_capacity - rr.committed_capacity
		FROM road_runs rr
		JOIN road_routes r ON r.id = rr.route_id
		ORDER BY rr.start_time
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var candidate services.RunCandidate
		var id, routeID uuid.UUID

		err = rows.Scan(
			&id,
			&routeID,
			&candidate.RouteName,
			&candidate.Start,
			&candidate.Remaining,
		)
		if err != nil {
			return nil, err
		}

		runID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		candidate.RunID = runID

		roadRouteID, idErr := kernel.UUIDFromBytes(routeID[:])
		if idErr != nil {
			return nil, idErr
		}

		cities, citiesErr := h.servicedCities(ctx, roadRouteID)
		if citiesErr != nil {
			return nil, citiesErr
		}
		candidate.Cities = cities

		candidates = append(candidates, candidate)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	matched := h.matcher.SelectRoadRuns(candidates, query.DestinationCity(), query.NotBefore())

	responses := make([]CandidateRoadRunsQueryResponse, 0, len(matched))
	for _, m := range matched {
		responses = append(responses, CandidateRoadRunsQueryResponse{
			RunID:     m.RunID,
			RouteName: m.RouteName,
			Cities:    m.Cities,
			Start:     m.Start,
			Remaining: m.Remaining,
		})
	}

	return responses, nil
}

func (h CandidateRoadRunsQueryHandler) servicedCities(
	ctx context.Context, routeID kernel.UUID,
) ([]string, error) {
	cities, err := h.cache.GetStops(ctx, RouteKindRoad, routeID)
	if err == nil {
		return cities, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	var citiesText string
	err = h.db.WithContext(ctx).Raw(`
		SELECT cities FROM road_routes WHERE id = ?
	`, routeID.Bytes()).Scan(&citiesText).Error
	if err != nil {
		return nil, err
	}

	cities = splitStopList(citiesText)

	// Best effort: a failed cache write must not fail the query.
	_ = h.cache.SetStops(ctx, RouteKindRoad, routeID, cities)

	return cities, nil
}

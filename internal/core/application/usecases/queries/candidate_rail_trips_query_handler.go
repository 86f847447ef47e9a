package queries

import (
	"context"
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// stopListSeparator delimits stop and city lists on route rows.
const stopListSeparator = "|"

// CandidateRailTripsQueryHandler retrieves feasible rail trips for a
// destination. Trips and their remaining capacity come from a raw SQL read;
// route stop lists come through the route cache, falling back to the route
// table on a miss.
type CandidateRailTripsQueryHandler struct {
	db      *gorm.DB
	cache   RouteStopCache
	matcher services.RouteMatcher
}

// NewCandidateRailTripsQueryHandler creates a handler for rail candidate queries.
func NewCandidateRailTripsQueryHandler(db *gorm.DB, cache RouteStopCache) CandidateRailTripsQueryHandler {
	return CandidateRailTripsQueryHandler{
		db:      db,
		cache:   cache,
		matcher: services.NewRouteMatcher(),
	}
}

// Handle executes the query and returns matching trips in ranked order.
func (h CandidateRailTripsQueryHandler) Handle(
	ctx context.Context,
	query CandidateRailTripsQuery,
) ([]CandidateRailTripsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]services.TripCandidate, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.route_id,
			r.name,
			t.departure,
			t.total_capacity - t.committed_capacity
		FROM rail_trips t
		JOIN rail_routes r ON r.id = t.route_id
		ORDER BY t.departure
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var candidate services.TripCandidate
		var id, routeID uuid.UUID

		err = rows.Scan(
			&id,
			&routeID,
			&candidate.RouteName,
			&candidate.Departure,
			&candidate.Remaining,
		)
		if err != nil {
			return nil, err
		}

		tripID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		candidate.TripID = tripID

		railRouteID, idErr := kernel.UUIDFromBytes(routeID[:])
		if idErr != nil {
			return nil, idErr
		}

		stops, stopsErr := h.routeStops(ctx, railRouteID)
		if stopsErr != nil {
			return nil, stopsErr
		}
		candidate.Stops = stops

		candidates = append(candidates, candidate)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	matched := h.matcher.SelectRailTrips(candidates, query.DestinationCity(), query.NotBefore())

	responses := make([]CandidateRailTripsQueryResponse, 0, len(matched))
	for _, m := range matched {
		responses = append(responses, CandidateRailTripsQueryResponse{
			TripID:    m.TripID,
			RouteName: m.RouteName,
			Stops:     m.Stops,
			Departure: m.Departure,
			Remaining: m.Remaining,
		})
	}

	return responses, nil
}

func (h CandidateRailTripsQueryHandler) routeStops(
	ctx context.Context, routeID kernel.UUID,
) ([]string, error) {
	stops, err := h.cache.GetStops(ctx, RouteKindRail, routeID)
	if err == nil {
		return stops, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	var stopsText string
	err = h.db.WithContext(ctx).Raw(`
		SELECT stops FROM rail_routes WHERE id = ?
	`, routeID.Bytes()).Scan(&stopsText).Error
	if err != nil {
		return nil, err
	}

	stops = splitStopList(stopsText)

	// Best effort: a failed cache write must not fail the query.
	_ = h.cache.SetStops(ctx, RouteKindRail, routeID, stops)

	return stops, nil
}

// splitStopList parses the delimited stop text stored on route rows.
func splitStopList(text string) []string {
	parts := strings.Split(text, stopListSeparator)
	stops := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			stops = append(stops, trimmed)
		}
	}
	return stops
}

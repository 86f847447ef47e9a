package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCandidateRailTripsQueryIsNotConstructed = errors.New(
		"CandidateRailTripsQuery must be created via NewCandidateRailTripsQuery constructor",
	)
	ErrDestinationCityIsRequired = errors.New("destination city is required")
)

// CandidateRailTripsQuery asks which departing rail trips could carry an
// order to its destination city. Results are ranked earliest-departure first
// with remaining capacity as the tie-breaker; the operator picks one and the
// coordinator re-validates it under a lock.
type CandidateRailTripsQuery struct { //nolint:recvcheck //using for validation
	destinationCity string
	notBefore       time.Time

	guard guard.ConstructorGuard
}

// NewCandidateRailTripsQuery creates a query for rail trip candidates.
// A zero notBefore means no departure-time floor.
func NewCandidateRailTripsQuery(destinationCity string, notBefore time.Time) (CandidateRailTripsQuery, error) {
	if destinationCity == "" {
		return CandidateRailTripsQuery{}, ErrDestinationCityIsRequired
	}

	return CandidateRailTripsQuery{
		destinationCity: destinationCity,
		notBefore:       notBefore,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CandidateRailTripsQuery) Validate() error {
	return q.guard.Validate(ErrCandidateRailTripsQueryIsNotConstructed)
}

// DestinationCity returns the city the order must reach.
func (q CandidateRailTripsQuery) DestinationCity() string {
	return q.destinationCity
}

// NotBefore returns the earliest acceptable departure time.
func (q CandidateRailTripsQuery) NotBefore() time.Time {
	return q.notBefore
}

// CandidateRailTripsQueryResponse is one feasible trip for the operator to
// choose from. Remaining is a snapshot and may be stale by selection time.
type CandidateRailTripsQueryResponse struct {
	TripID    kernel.UUID
	RouteName string
	Stops     []string
	Departure time.Time
	Remaining int
}

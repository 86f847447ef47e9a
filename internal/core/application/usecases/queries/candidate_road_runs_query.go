package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCandidateRoadRunsQueryIsNotConstructed = errors.New(
	"CandidateRoadRunsQuery must be created via NewCandidateRoadRunsQuery constructor",
)

// CandidateRoadRunsQuery asks which scheduled road runs service an order's
// destination city, under the same ranking rule as rail candidates.
type CandidateRoadRunsQuery struct { //nolint:recvcheck //using for validation
	destinationCity string
	notBefore       time.Time

	guard guard.ConstructorGuard
}

// NewCandidateRoadRunsQuery creates a query for road run candidates.
// A zero notBefore means no start-time floor.
func NewCandidateRoadRunsQuery(destinationCity string, notBefore time.Time) (CandidateRoadRunsQuery, error) {
	if destinationCity == "" {
		return CandidateRoadRunsQuery{}, ErrDestinationCityIsRequired
	}

	return CandidateRoadRunsQuery{
		destinationCity: destinationCity,
		notBefore:       notBefore,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CandidateRoadRunsQuery) Validate() error {
	return q.guard.Validate(ErrCandidateRoadRunsQueryIsNotConstructed)
}

// DestinationCity returns the city the order must reach.
func (q CandidateRoadRunsQuery) DestinationCity() string {
	return q.destinationCity
}

// NotBefore returns the earliest acceptable run start.
func (q CandidateRoadRunsQuery) NotBefore() time.Time {
	return q.notBefore
}

// CandidateRoadRunsQueryResponse is one feasible run for the operator to
// choose from. Remaining is a snapshot and may be stale by selection time.
type CandidateRoadRunsQueryResponse struct {
	RunID     kernel.UUID
	RouteName string
	Cities    []string
	Start     time.Time
	Remaining int
}

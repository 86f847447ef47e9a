package services

import (
	"sort"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// TripCandidate is the read model the matcher filters and ranks for the rail
// stage: one departing trip together with its route's stop sequence and its
// remaining capacity snapshot.
type TripCandidate struct {
	TripID    kernel.UUID
	RouteName string
	Stops     []string
	Departure time.Time
	Remaining int
}

// RunCandidate is the road-stage equivalent: one scheduled run together with
// the cities its route services and its remaining capacity snapshot.
type RunCandidate struct {
	RunID     kernel.UUID
	RouteName string
	Cities    []string
	Start     time.Time
	Remaining int
}

// RouteMatcher is a domain service that answers which scheduled resources
// could feasibly carry an order to its destination. It never mutates state;
// capacity snapshots in its results may be stale, which is acceptable because
// the allocation coordinator re-validates under a lock before committing.
//
// Destination matching is exact-first: a stop or serviced city matches when it
// equals the destination case-insensitively. Only when no candidate matches
// exactly does the matcher fall back to bidirectional substring containment,
// preserving the tolerant station-name matching operators rely on without
// letting it shadow an exact hit.
type RouteMatcher struct{}

// NewRouteMatcher creates a new RouteMatcher instance.
func NewRouteMatcher() RouteMatcher {
	return RouteMatcher{}
}

// SelectRailTrips returns the trips that could carry an order to
// destinationCity, departing at or after notBefore, ranked earliest-departure
// first with remaining capacity (descending) as the tie-breaker.
func (m RouteMatcher) SelectRailTrips(
	trips []TripCandidate, destinationCity string, notBefore time.Time,
) []TripCandidate {
	exact := make([]TripCandidate, 0)
	fuzzy := make([]TripCandidate, 0)

	for _, t := range trips {
		if t.Departure.Before(notBefore) {
			continue
		}
		switch matchAny(t.Stops, destinationCity) {
		case matchExact:
			exact = append(exact, t)
		case matchFuzzy:
			fuzzy = append(fuzzy, t)
		case matchNone:
		}
	}

	candidates := exact
	if len(candidates) == 0 {
		candidates = fuzzy
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].Departure.Equal(candidates[j].Departure) {
			return candidates[i].Departure.Before(candidates[j].Departure)
		}
		return candidates[i].Remaining > candidates[j].Remaining
	})

	return candidates
}

// SelectRoadRuns returns the runs whose route services destinationCity,
// starting at or after notBefore, under the same ranking rule as rail trips.
func (m RouteMatcher) SelectRoadRuns(
	runs []RunCandidate, destinationCity string, notBefore time.Time,
) []RunCandidate {
	exact := make([]RunCandidate, 0)
	fuzzy := make([]RunCandidate, 0)

	for _, r := range runs {
		if r.Start.Before(notBefore) {
			continue
		}
		switch matchAny(r.Cities, destinationCity) {
		case matchExact:
			exact = append(exact, r)
		case matchFuzzy:
			fuzzy = append(fuzzy, r)
		case matchNone:
		}
	}

	candidates := exact
	if len(candidates) == 0 {
		candidates = fuzzy
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].Start.Equal(candidates[j].Start) {
			return candidates[i].Start.Before(candidates[j].Start)
		}
		return candidates[i].Remaining > candidates[j].Remaining
	})

	return candidates
}

type matchKind int

const (
	matchNone matchKind = iota
	matchFuzzy
	matchExact
)

// matchAny reports the strongest match between the destination and any name
// in the list.
func matchAny(names []string, destination string) matchKind {
	best := matchNone
	for _, name := range names {
		switch matchCity(name, destination) {
		case matchExact:
			return matchExact
		case matchFuzzy:
			best = matchFuzzy
		case matchNone:
		}
	}
	return best
}

// matchCity compares one stop or serviced-city name against the destination.
// Exact equality (case-insensitive, surrounding space ignored) beats the
// bidirectional substring containment used as the fuzzy fallback.
func matchCity(name, destination string) matchKind {
	n := strings.ToLower(strings.TrimSpace(name))
	d := strings.ToLower(strings.TrimSpace(destination))
	if n == "" || d == "" {
		return matchNone
	}
	if n == d {
		return matchExact
	}
	if strings.Contains(n, d) || strings.Contains(d, n) {
		return matchFuzzy
	}
	return matchNone
}

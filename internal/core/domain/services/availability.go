package services

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrAvailabilityConflict is returned when a requested time window intersects
// an interval the entity is already booked for. Recoverable: the caller picks
// a different crew member, truck, or window.
var ErrAvailabilityConflict = errors.New("availability conflict")

// AvailabilityGuard is a domain service answering whether a crew entity
// (driver, assistant, or truck) is free during a window, given the busy
// intervals derived from the runs it is already committed to.
//
// The guard only does the interval math. Linearizability of check-then-insert
// is the persistence layer's job: the command handlers load an entity's
// conflicting runs under a lock and consult the guard inside that same
// transaction.
type AvailabilityGuard struct{}

// NewAvailabilityGuard creates a new AvailabilityGuard instance.
func NewAvailabilityGuard() AvailabilityGuard {
	return AvailabilityGuard{}
}

// IsFree reports whether window intersects none of the busy intervals.
// Intervals are half-open, so a window starting exactly when a busy interval
// ends is free.
func (g AvailabilityGuard) IsFree(busy []kernel.TimeWindow, window kernel.TimeWindow) bool {
	_, conflict := g.FindConflict(busy, window)
	return !conflict
}

// FindConflict returns the first busy interval intersecting window, if any.
func (g AvailabilityGuard) FindConflict(
	busy []kernel.TimeWindow, window kernel.TimeWindow,
) (kernel.TimeWindow, bool) {
	for _, b := range busy {
		if b.Overlaps(window) {
			return b, true
		}
	}
	return kernel.TimeWindow{}, false
}

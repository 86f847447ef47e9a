package kernel

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimeWindowIsNotConstructed indicates that a TimeWindow was not created
	// through the NewTimeWindow constructor.
	ErrTimeWindowIsNotConstructed = errors.New("TimeWindow must be created via NewTimeWindow constructor")
)

// TimeWindow is a value object representing a half-open time interval [start, end).
// The end instant is excluded, so two back-to-back windows where one ends exactly
// when the other starts do not overlap. This is the interval definition used for
// every schedule and busy-period check in the domain.
//
// TimeWindow is immutable and must be created via NewTimeWindow.
//
// Example usage:
//
//	morning, _ := kernel.NewTimeWindow(nineAM, noon)
//	afternoon, _ := kernel.NewTimeWindow(noon, fivePM)
//	morning.Overlaps(afternoon) // false: [09:00,12:00) and [12:00,17:00) touch but do not intersect
type TimeWindow struct {
	start time.Time
	end   time.Time

	guard ConstructorGuard
}

// NewTimeWindow creates a TimeWindow over [start, end).
// Both instants must be non-zero and start must be strictly before end.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if start.IsZero() || end.IsZero() {
		return TimeWindow{}, fmt.Errorf("time window bounds are required: start=%v, end=%v", start, end)
	}
	if !start.Before(end) {
		return TimeWindow{}, fmt.Errorf("time window start %v must be before end %v", start, end)
	}

	return TimeWindow{
		start: start,
		end:   end,
		guard: NewConstructorGuard(),
	}, nil
}

// Validate ensures the TimeWindow was created via NewTimeWindow.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// Start returns the inclusive lower bound of the window.
func (w TimeWindow) Start() time.Time {
	return w.start
}

// End returns the exclusive upper bound of the window.
func (w TimeWindow) End() time.Time {
	return w.end
}

// Overlaps reports whether two half-open windows intersect.
// [s1,e1) and [s2,e2) intersect iff s1 < e2 and s2 < e1.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

// Started reports whether the window has begun at instant now (start <= now).
func (w TimeWindow) Started(now time.Time) bool {
	return !now.Before(w.start)
}

// Ended reports whether the window is over at instant now (end <= now).
func (w TimeWindow) Ended(now time.Time) bool {
	return !now.Before(w.end)
}

// IsEqual compares two windows by their bounds.
func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.start.Equal(other.start) && w.end.Equal(other.end)
}

// String renders the window in the half-open notation used in logs.
func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s, %s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}

package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderNotConfirmed is returned when a rail allocation is attempted for
	// an order that has not reached Confirmed status.
	ErrOrderNotConfirmed = errors.New("order is not confirmed")

	// ErrOrderNotRailScheduled is returned when a road allocation is attempted
	// for an order that does not have a committed rail leg.
	ErrOrderNotRailScheduled = errors.New("order is not rail scheduled")

	// ErrOrderIsTerminal is returned when any transition is attempted on a
	// delivered or cancelled order.
	ErrOrderIsTerminal = errors.New("order is in a terminal status")
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders always
// follow the two-stage allocation workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> RailScheduled ──> RoadScheduled ──> InTransit ──> Delivered
//	                │◄──────────────┘   │◄──────────────┘
//	            (unschedule on allocation cancel)
//
// Cancelled is reachable from every non-terminal state. Delivered and
// Cancelled are terminal: no further transitions are allowed.
//
// Confirmed→RailScheduled and RailScheduled→RoadScheduled are driven only by
// successful allocations; the reverse edges only by allocation cancellation.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status produced by order intake.
	// Pending orders cannot be allocated.
	Pending

	// Confirmed indicates the order is ready for rail allocation.
	Confirmed

	// RailScheduled indicates the order holds a committed rail leg and is
	// ready for road allocation.
	RailScheduled

	// RoadScheduled indicates the order holds both legs and awaits departure.
	RoadScheduled

	// InTransit indicates the road run carrying the order has departed.
	InTransit

	// Delivered is the successful terminal status.
	Delivered

	// Cancelled is the terminal status reached by explicit cancellation.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		Pending:       "Pending",
		Confirmed:     "Confirmed",
		RailScheduled: "RailScheduled",
		RoadScheduled: "RoadScheduled",
		InTransit:     "InTransit",
		Delivered:     "Delivered",
		Cancelled:     "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:       "Pending",
		Confirmed:     "Confirmed",
		RailScheduled: "RailScheduled",
		RoadScheduled: "RoadScheduled",
		InTransit:     "InTransit",
		Delivered:     "Delivered",
		Cancelled:     "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Confirm transitions Pending to Confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to confirm", s.String()),
		)
	}
	return Confirmed, nil
}

// ScheduleRail transitions Confirmed to RailScheduled.
// Any other source status fails with ErrOrderNotConfirmed.
func (s Status) ScheduleRail() (Status, error) {
	if s != Confirmed {
		return 0, fmt.Errorf("%s cannot take a rail leg: %w", s.String(), ErrOrderNotConfirmed)
	}
	return RailScheduled, nil
}

// ScheduleRoad transitions RailScheduled to RoadScheduled.
// Any other source status fails with ErrOrderNotRailScheduled.
func (s Status) ScheduleRoad() (Status, error) {
	if s != RailScheduled {
		return 0, fmt.Errorf("%s cannot take a road leg: %w", s.String(), ErrOrderNotRailScheduled)
	}
	return RoadScheduled, nil
}

// UnscheduleRail reverts RailScheduled to Confirmed when the rail leg is cancelled.
func (s Status) UnscheduleRail() (Status, error) {
	if s != RailScheduled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s has no rail leg to cancel", s.String()),
		)
	}
	return Confirmed, nil
}

// UnscheduleRoad reverts RoadScheduled to RailScheduled when the road leg is cancelled.
func (s Status) UnscheduleRoad() (Status, error) {
	if s != RoadScheduled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s has no road leg to cancel", s.String()),
		)
	}
	return RailScheduled, nil
}

// StartTransit transitions RoadScheduled to InTransit once the run departs.
func (s Status) StartTransit() (Status, error) {
	if s != RoadScheduled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start transit", s.String()),
		)
	}
	return InTransit, nil
}

// MarkDelivered transitions InTransit to Delivered.
func (s Status) MarkDelivered() (Status, error) {
	if s != InTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}
	return Delivered, nil
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, fmt.Errorf("%s cannot be cancelled: %w", s.String(), ErrOrderIsTerminal)
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return Cancelled, nil
}

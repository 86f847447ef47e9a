// Package shipment implements the ShipmentLeg entity: a commitment of space
// from one order against one schedulable resource (a rail trip or a road run).
// An order holds at most one active leg per stage; a leg is created atomically
// with its ledger commit and deleted only by a cancellation that reverses it.
package shipment

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrLegIsNotConstructed is returned when a Leg instance was not created
	// through the NewLeg or RestoreLeg factory methods.
	ErrLegIsNotConstructed = errors.New("Leg must be created via NewLeg or RestoreLeg constructor")
)

// Stage identifies which half of the two-stage journey a leg covers.
type Stage int

const (
	// UnknownStage represents an invalid or undefined stage.
	UnknownStage Stage = iota

	// Rail is the long-haul stage carried by a rail trip.
	Rail

	// Road is the last-mile stage carried by a road run.
	Road
)

// Validate checks if the Stage value is one of the defined stages.
func (s Stage) Validate() error {
	if s != Rail && s != Road {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%d is not a valid stage", s),
		)
	}
	return nil
}

// String returns the human-readable name of the stage.
func (s Stage) String() string {
	switch s {
	case Rail:
		return "Rail"
	case Road:
		return "Road"
	default:
		return "Unknown"
	}
}

// Leg records one order's space commitment against one resource.
// The committed space equals the order's required space at allocation time and
// is the exact amount restored when the leg is cancelled.
type Leg struct {
	// id is the unique identifier for the leg
	id kernel.UUID

	// orderID references the order holding the commitment
	orderID kernel.UUID

	// stage distinguishes the rail leg from the road leg
	stage Stage

	// resourceID references the rail trip or road run carrying the leg
	resourceID kernel.UUID

	// space is the amount committed on the resource (must be positive)
	space int

	// isConstructed ensures the leg was created via a factory
	isConstructed bool
}

// NewLeg creates a leg committing space from an order against a resource.
func NewLeg(id, orderID kernel.UUID, stage Stage, resourceID kernel.UUID, space int) (*Leg, error) {
	leg := &Leg{
		isConstructed: true,
	}

	if err := errors.Join(
		leg.setID(id),
		leg.setOrderID(orderID),
		leg.setStage(stage),
		leg.setResourceID(resourceID),
		leg.setSpace(space),
	); err != nil {
		return nil, err
	}

	return leg, nil
}

// RestoreLeg reconstructs a leg from persistence.
func RestoreLeg(id, orderID kernel.UUID, stage Stage, resourceID kernel.UUID, space int) (*Leg, error) {
	return NewLeg(id, orderID, stage, resourceID, space)
}

// Validate ensures the Leg instance was properly constructed through a factory.
func (l *Leg) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLegIsNotConstructed
	}
	return nil
}

// ID returns the leg's unique identifier.
func (l *Leg) ID() kernel.UUID {
	return l.id
}

// OrderID returns the order holding the commitment.
func (l *Leg) OrderID() kernel.UUID {
	return l.orderID
}

// Stage returns whether this is the rail or the road leg.
func (l *Leg) Stage() Stage {
	return l.stage
}

// ResourceID returns the rail trip or road run carrying the leg.
func (l *Leg) ResourceID() kernel.UUID {
	return l.resourceID
}

// Space returns the amount committed on the resource.
func (l *Leg) Space() int {
	return l.space
}

func (l *Leg) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Leg) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	l.orderID = orderID
	return nil
}

func (l *Leg) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	l.stage = stage
	return nil
}

func (l *Leg) setResourceID(resourceID kernel.UUID) error {
	if err := resourceID.Validate(); err != nil {
		return err
	}
	l.resourceID = resourceID
	return nil
}

func (l *Leg) setSpace(space int) error {
	if space <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"space is invalid",
			fmt.Errorf("%d is not greater than 0", space),
		)
	}
	l.space = space
	return nil
}

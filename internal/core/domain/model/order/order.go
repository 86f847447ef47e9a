package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents a customer order moving through the two-stage distribution
// network. It is the aggregate root governing the order lifecycle from intake
// through rail and road allocation to delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must have a non-empty destination city and street
//   - Required space must be positive (greater than 0)
//   - Status transitions follow the lifecycle state machine in Status
//   - Once Delivered or Cancelled the order is immutable
//
// Allocation-driven transitions (ScheduleRail, ScheduleRoad and their
// reversals) are invoked only by the allocation command handlers, inside the
// same transaction that moves capacity, so a status never advances without
// its leg and vice versa.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// destinationCity is the city the order must reach
	destinationCity string

	// street is the delivery address within the destination city
	street string

	// requiredSpace is the volume the order occupies on any resource (must be positive)
	requiredSpace int

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a factory
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation.
// This is the only way to create a fresh Order, ensuring all business
// invariants hold from the start.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - destinationCity: City the order must reach (must not be empty)
//   - street: Delivery address within the city (must not be empty)
//   - requiredSpace: Volume units the order occupies (must be positive)
func NewOrder(id kernel.UUID, destinationCity, street string, requiredSpace int) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setDestination(destinationCity, street),
		order.setRequiredSpace(requiredSpace),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence, including its current
// lifecycle status. The restored order behaves identically to one advanced
// through normal domain operations.
func RestoreOrder(
	id kernel.UUID, destinationCity, street string, requiredSpace int, status Status,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setDestination(destinationCity, street),
		order.setRequiredSpace(requiredSpace),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// DestinationCity returns the city the order must reach.
func (o *Order) DestinationCity() string {
	return o.destinationCity
}

// Street returns the delivery address within the destination city.
func (o *Order) Street() string {
	return o.street
}

// RequiredSpace returns the volume units the order occupies on a resource.
func (o *Order) RequiredSpace() int {
	return o.requiredSpace
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Confirm marks a Pending order ready for allocation.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ScheduleRail advances the order to RailScheduled after a successful rail
// allocation. Fails with ErrOrderNotConfirmed unless the order is Confirmed.
func (o *Order) ScheduleRail() error {
	newStatus, err := o.status.ScheduleRail()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ScheduleRoad advances the order to RoadScheduled after a successful road
// allocation. Fails with ErrOrderNotRailScheduled unless the order is
// RailScheduled.
func (o *Order) ScheduleRoad() error {
	newStatus, err := o.status.ScheduleRoad()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// UnscheduleRail reverts the order to Confirmed when its rail leg is cancelled.
func (o *Order) UnscheduleRail() error {
	newStatus, err := o.status.UnscheduleRail()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// UnscheduleRoad reverts the order to RailScheduled when its road leg is cancelled.
func (o *Order) UnscheduleRoad() error {
	newStatus, err := o.status.UnscheduleRoad()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// StartTransit marks the order as departed on its road run.
func (o *Order) StartTransit() error {
	newStatus, err := o.status.StartTransit()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkDelivered completes the order lifecycle.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.MarkDelivered()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel moves the order to Cancelled from any non-terminal state.
// Compensating allocation cancellations are the caller's responsibility and
// must happen in the same transaction.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setDestination validates and sets the order's destination.
// This is a private method used only during construction.
func (o *Order) setDestination(city, street string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("destination city")
	}
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	o.destinationCity = city
	o.street = street
	return nil
}

// setRequiredSpace validates and sets the order's required space.
// Required space must be positive (greater than 0).
// This is a private method used only during construction.
func (o *Order) setRequiredSpace(requiredSpace int) error {
	if requiredSpace <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"required space is invalid",
			fmt.Errorf("%d is not greater than 0", requiredSpace),
		)
	}
	o.requiredSpace = requiredSpace
	return nil
}

// setStatus validates and sets the order's lifecycle status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

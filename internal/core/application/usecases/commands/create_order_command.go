package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrDestinationCityIsRequired = errors.New("destination city is required")
	ErrStreetIsRequired          = errors.New("street is required")
	ErrRequiredSpaceIsInvalid    = errors.New("required space must be greater than 0")
)

// CreateOrderCommand represents a request from order intake to register a new
// order in Pending status. The allocation coordinator never creates orders;
// this command is the intake boundary.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "Riverton", "14 Dock Street", 25)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	destinationCity string
	street          string
	requiredSpace   int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID is valid, the destination is complete, and the
// required space is positive.
func NewCreateOrderCommand(
	orderID kernel.UUID, destinationCity, street string, requiredSpace int,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setDestination(destinationCity, street),
		orderCommand.setRequiredSpace(requiredSpace),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DestinationCity returns the city the order must reach.
func (c CreateOrderCommand) DestinationCity() string {
	return c.destinationCity
}

// Street returns the delivery address within the destination city.
func (c CreateOrderCommand) Street() string {
	return c.street
}

// RequiredSpace returns the volume units the order occupies.
func (c CreateOrderCommand) RequiredSpace() int {
	return c.requiredSpace
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDestination(city, street string) error {
	if city == "" {
		return ErrDestinationCityIsRequired
	}
	if street == "" {
		return ErrStreetIsRequired
	}

	c.destinationCity = city
	c.street = street
	return nil
}

func (c *CreateOrderCommand) setRequiredSpace(requiredSpace int) error {
	if requiredSpace <= 0 {
		return ErrRequiredSpaceIsInvalid
	}

	c.requiredSpace = requiredSpace
	return nil
}

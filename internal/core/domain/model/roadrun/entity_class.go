package roadrun

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// EntityClass is a tagged variant over the crew resource classes whose busy
// intervals must never overlap. Each class is checked independently: a driver
// and an assistant may be booked for the same window, but two runs may never
// share one driver, one assistant, or one truck for overlapping windows.
type EntityClass int

const (
	// UnknownClass represents an invalid or undefined class.
	UnknownClass EntityClass = iota

	// Truck is a vehicle resource.
	Truck

	// Driver is the staff member operating the truck.
	Driver

	// Assistant is the staff member accompanying the driver.
	Assistant
)

// AllEntityClasses lists the crew classes checked during run creation.
func AllEntityClasses() []EntityClass {
	return []EntityClass{Truck, Driver, Assistant}
}

func getEntityClassStrings() map[EntityClass]string {
	return map[EntityClass]string{
		UnknownClass: "Unknown",
		Truck:        "Truck",
		Driver:       "Driver",
		Assistant:    "Assistant",
	}
}

// Validate checks if the EntityClass value is one of the defined classes.
func (c EntityClass) Validate() error {
	if c != Truck && c != Driver && c != Assistant {
		return errs.NewValueIsInvalidErrorWithCause(
			"entity class is invalid",
			fmt.Errorf("%d is not a valid entity class", c),
		)
	}
	return nil
}

// String returns the human-readable name of the class.
func (c EntityClass) String() string {
	if str, ok := getEntityClassStrings()[c]; ok {
		return str
	}
	return "Unknown"
}

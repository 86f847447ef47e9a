package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/guard"
)

var (
	ErrAdvanceTransitCommandIsNotConstructed = errors.New(
		"AdvanceTransitCommand must be created via NewAdvanceTransitCommand constructor",
	)
	ErrAdvanceTransitTimeIsRequired = errors.New("advance transit reference time is required")
)

// AdvanceTransitCommand moves scheduled orders forward through transit based
// on a reference time: orders whose run window has started go InTransit, and
// orders whose run window has ended are marked Delivered. Issued periodically
// by the transit progress job.
type AdvanceTransitCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewAdvanceTransitCommand creates a command to advance transit up to now.
func NewAdvanceTransitCommand(now time.Time) (AdvanceTransitCommand, error) {
	if now.IsZero() {
		return AdvanceTransitCommand{}, ErrAdvanceTransitTimeIsRequired
	}

	return AdvanceTransitCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceTransitCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceTransitCommandIsNotConstructed)
}

// Now returns the reference time transit progress is measured against.
func (c AdvanceTransitCommand) Now() time.Time {
	return c.now
}

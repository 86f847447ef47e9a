// Package capacity implements the committed-versus-total space bookkeeping
// shared by every schedulable resource (rail trips and road runs).
//
// The Ledger value object enforces the capacity invariant
// 0 <= committed <= total on every mutation. It carries no locking of its
// own: callers load the owning aggregate under a per-resource lock (a
// SELECT ... FOR UPDATE in the persistence layer), mutate the ledger, and
// persist it inside the same transaction, which makes check-and-commit a
// single indivisible step per resource.
package capacity

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

var (
	// ErrCapacityExceeded is returned by TryCommit when the requested amount
	// does not fit into the remaining capacity. Recoverable: the caller picks
	// a different candidate resource.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvariantViolation is returned by Release when the release would drop
	// committed space below zero. It signals a bookkeeping bug upstream and is
	// unreachable under correct usage; occurrences must be logged as
	// correctness-bug alerts.
	ErrInvariantViolation = errors.New("capacity invariant violation")

	// ErrLedgerIsNotConstructed indicates that a Ledger was not created via
	// NewLedger or RestoreLedger.
	ErrLedgerIsNotConstructed = errors.New("Ledger must be created via NewLedger or RestoreLedger constructor")
)

// Ledger is a value object tracking committed space against a fixed total.
//
// Invariant: 0 <= committed <= total at all times. TryCommit and Release are
// the only mutators and both refuse any change that would break the invariant,
// so a Ledger can never be observed in an invalid state.
type Ledger struct {
	total     int
	committed int

	isConstructed bool
}

// NewLedger creates an empty ledger with the given total capacity.
// Total must be positive.
func NewLedger(total int) (Ledger, error) {
	if total <= 0 {
		return Ledger{}, errs.NewValueIsInvalidErrorWithCause(
			"total capacity is invalid",
			fmt.Errorf("%d is not greater than 0", total),
		)
	}

	return Ledger{
		total:         total,
		isConstructed: true,
	}, nil
}

// RestoreLedger reconstructs a ledger from persistence.
// The persisted state must already satisfy the capacity invariant.
func RestoreLedger(total, committed int) (Ledger, error) {
	if total <= 0 {
		return Ledger{}, errs.NewValueIsInvalidErrorWithCause(
			"total capacity is invalid",
			fmt.Errorf("%d is not greater than 0", total),
		)
	}
	if committed < 0 || committed > total {
		return Ledger{}, errs.NewValueIsOutOfRangeError("committed capacity", committed, 0, total)
	}

	return Ledger{
		total:         total,
		committed:     committed,
		isConstructed: true,
	}, nil
}

// Validate ensures the ledger was created through a constructor.
func (l Ledger) Validate() error {
	if !l.isConstructed {
		return ErrLedgerIsNotConstructed
	}
	return nil
}

// Total returns the fixed total capacity.
func (l Ledger) Total() int {
	return l.total
}

// Committed returns the space already promised to orders.
func (l Ledger) Committed() int {
	return l.committed
}

// Remaining returns the space still available for commitment.
// The value is advisory outside a resource lock; the authoritative check
// happens inside TryCommit.
func (l Ledger) Remaining() int {
	return l.total - l.committed
}

// TryCommit returns a ledger with amount added to the committed space.
// It succeeds only if committed + amount <= total; otherwise it returns
// ErrCapacityExceeded and the ledger is unchanged. Amount must be positive.
func (l Ledger) TryCommit(amount int) (Ledger, error) {
	if amount <= 0 {
		return Ledger{}, errs.NewValueIsInvalidErrorWithCause(
			"commit amount is invalid",
			fmt.Errorf("%d is not greater than 0", amount),
		)
	}
	if l.committed+amount > l.total {
		return Ledger{}, fmt.Errorf(
			"cannot commit %d units: %d of %d already committed: %w",
			amount, l.committed, l.total, ErrCapacityExceeded,
		)
	}

	committed := l
	committed.committed += amount
	return committed, nil
}

// Release returns a ledger with amount removed from the committed space.
// A release that would drop committed below zero returns ErrInvariantViolation
// and leaves the ledger unchanged. Amount must be positive.
func (l Ledger) Release(amount int) (Ledger, error) {
	if amount <= 0 {
		return Ledger{}, errs.NewValueIsInvalidErrorWithCause(
			"release amount is invalid",
			fmt.Errorf("%d is not greater than 0", amount),
		)
	}
	if amount > l.committed {
		return Ledger{}, fmt.Errorf(
			"cannot release %d units: only %d committed: %w",
			amount, l.committed, ErrInvariantViolation,
		)
	}

	released := l
	released.committed -= amount
	return released, nil
}

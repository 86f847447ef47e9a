package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
//
// Every allocation command runs inside exactly one UnitOfWork: the locked
// reads, ledger mutations, leg writes, and status advances either all commit
// or all roll back, so no half-committed state is ever visible to other
// callers.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// RailTripRepository returns a RailTripRepository bound to the current transaction.
	RailTripRepository() RailTripRepository

	// RoadRunRepository returns a RoadRunRepository bound to the current transaction.
	RoadRunRepository() RoadRunRepository

	// ShipmentLegRepository returns a ShipmentLegRepository bound to the current transaction.
	ShipmentLegRepository() ShipmentLegRepository
}

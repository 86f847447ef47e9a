// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// locked reads, domain mutation, and persistence.
//
// The allocation handlers in this package are the only code permitted to move
// capacity or availability state. Each handler is one all-or-nothing
// transaction: a failure at any step rolls back every effect.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TripRepoFactory provides access to the rail trip repository within a transaction.
	TripRepoFactory interface {
		RailTripRepository() ports.RailTripRepository
	}

	// RunRepoFactory provides access to the road run repository within a transaction.
	RunRepoFactory interface {
		RoadRunRepository() ports.RoadRunRepository
	}

	// LegRepoFactory provides access to the shipment leg repository within a transaction.
	LegRepoFactory interface {
		ShipmentLegRepository() ports.ShipmentLegRepository
	}

	// OrderUoW manages transactions for order-only operations
	// (intake and confirmation).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TripUoW manages transactions for trip-only operations (schedule setup).
	TripUoW interface {
		TxManager
		TripRepoFactory
	}

	// TripUoWFactory creates new trip unit of work instances.
	TripUoWFactory interface {
		Create() TripUoW
	}

	// RunUoW manages transactions for run-only operations: run creation (the
	// three-way crew reservation) and run cancellation.
	RunUoW interface {
		TxManager
		RunRepoFactory
	}

	// RunUoWFactory creates new run unit of work instances.
	RunUoWFactory interface {
		Create() RunUoW
	}

	// UoW manages transactions across every aggregate the allocation
	// coordinator touches. Used by the allocation, cancellation, and transit
	// progress handlers.
	UoW interface {
		TxManager
		OrderRepoFactory
		TripRepoFactory
		RunRepoFactory
		LegRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

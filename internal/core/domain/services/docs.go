// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the dispatch system. It implements complex
// business logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - RouteMatcher: feasibility filtering and ranking of rail trips and road runs
//     for an order's destination
//   - AvailabilityGuard: overlap checks over a crew member's busy intervals
//
// Both services are pure: they never mutate state and never touch storage.
// Their results are advisory; the allocation command handlers re-validate
// everything under per-resource locks before committing.
package services

// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the allocation service.
//
// # Available Jobs
//
// 1. TransitProgressJob - Advances RoadScheduled orders into transit when
// their run window opens and marks InTransit orders delivered when it closes
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(advanceTransitHandler, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The transit progress job's cadence comes from configuration as a six-field
// cron expression (with seconds); the default runs once per minute. Transit
// progress is derived from run windows, so a missed tick is caught up by the
// next one.
//
// # Error Handling
//
// The transit job logs failures and keeps its schedule; orders it could not
// advance are retried on the next tick because status transitions are
// idempotent per window.
package jobs

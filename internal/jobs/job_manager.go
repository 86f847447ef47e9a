package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	transitProgressJob *TransitProgressJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	advanceTransitHandler commands.AdvanceTransitCommandHandler,
	transitSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		transitProgressJob: NewTransitProgressJob(advanceTransitHandler, transitSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.transitProgressJob.Start(); err != nil {
		return fmt.Errorf("failed to start transit progress job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.transitProgressJob.Stop()
}

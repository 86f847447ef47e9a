package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// TransitProgressJob periodically advances orders along their road runs:
// RoadScheduled orders whose run window has opened enter transit, and
// InTransit orders whose run window has closed are marked delivered.
type TransitProgressJob struct {
	handler  commands.AdvanceTransitCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewTransitProgressJob creates a job that advances transit on the given cron
// schedule (six-field expression with seconds).
func NewTransitProgressJob(
	handler commands.AdvanceTransitCommandHandler, schedule string, logger *slog.Logger,
) *TransitProgressJob {
	return &TransitProgressJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "transit_progress_job"),
	}
}

// Start begins the transit progress job on its configured schedule.
func (j *TransitProgressJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewAdvanceTransitCommand(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build advance transit command", "error", err)
			return
		}

		advanced, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Transit progress job failed", "error", err)
			return
		}

		if advanced > 0 {
			j.logger.InfoContext(ctx, "Advanced orders along their runs", "count", advanced)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Transit progress job started", "schedule", j.schedule)
	return nil
}

// Stop stops the transit progress job.
func (j *TransitProgressJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Transit progress job stopped")
}

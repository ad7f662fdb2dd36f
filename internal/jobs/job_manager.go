// Package jobs provides scheduled background tasks, built on
// github.com/robfig/cron/v3. Jobs are side observers of the order flow;
// state changes themselves always go through the use cases.
package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	availableOrdersDigestJob *AvailableOrdersDigestJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	availableOrdersReader AvailableOrdersReader,
	broadcaster Broadcaster,
	digestSchedule string,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		availableOrdersDigestJob: NewAvailableOrdersDigestJob(
			availableOrdersReader, broadcaster, digestSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.availableOrdersDigestJob.Start(); err != nil {
		return fmt.Errorf("failed to start available orders digest job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.availableOrdersDigestJob.Stop()
}

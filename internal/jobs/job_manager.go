package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/application/usecases/commands"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderPipelineJob *OrderPipelineJob
	stalePresenceJob *StalePresenceJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	uowFactory commands.ProcessOrderUoWFactory,
	processOrderHandler commands.ProcessOrderCommandHandler,
	presence ports.DriverPresence,
	offers OfferDropper,
	presenceTTL time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderPipelineJob: NewOrderPipelineJob(uowFactory, processOrderHandler, logger),
		stalePresenceJob: NewStalePresenceJob(presence, offers, presenceTTL, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderPipelineJob.Start(); err != nil {
		return fmt.Errorf("failed to start order pipeline job: %w", err)
	}

	if err := jm.stalePresenceJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.orderPipelineJob.Stop()
		return fmt.Errorf("failed to start stale presence job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stalePresenceJob.Stop()
	jm.orderPipelineJob.Stop()
}

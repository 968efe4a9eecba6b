// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the service needs.
//
// # Available Jobs
//
// 1. OrderPipelineJob - Runs every second to claim pending outbox tasks and drive the post-creation order workflow
// 2. StalePresenceJob - Runs every minute to sweep drivers whose telemetry stopped arriving
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(uowFactory, processOrderHandler, presence, coordinator, presenceTTL, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The pipeline job logs handler failures; retry state lives on the task rows themselves
// - Failed job starts will stop any already running jobs
package jobs

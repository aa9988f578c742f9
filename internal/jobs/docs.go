// Package jobs provides scheduled background tasks for the order platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations of the admin console deployment.
//
// # Available Jobs
//
// 1. PayoutSettlementJob - Sweeps pending withdrawals into processing on a
// configurable schedule so the banking integration can settle them.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(settlePayoutsHandler, "*/5 * * * *", logger)
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
// The settlement job takes a standard five-field cron expression from
// configuration. Refund requests are never settled by the sweep; they follow
// the admin review flow instead.
package jobs

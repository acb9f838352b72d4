// Package jobs provides scheduled background tasks for the order processing service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PendingOrdersSweeperJob - every SWEEPER_INTERVAL moves all Pending orders to Processing
// 2. OutboxRelayJob - every OUTBOX_RELAY_INTERVAL publishes unsent status-change events to Kafka
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweeper, relay) // relay may be nil
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Jobs are scheduled with "@every <interval>" and wrapped in
// cron.SkipIfStillRunning, so a run never overlaps the previous one.
// Stop cancels the context handed to a running job and waits for it.
//
// # Error Handling
//
// - Failures are logged and counted; the next tick is the retry
// - A run cancelled by Stop is logged at info level and saves nothing
// - Failed job starts will stop any already running jobs
package jobs

// Package jobs provides scheduled background tasks for the tracking service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the service needs while running.
//
// # Available Jobs
//
// 1. SubscriptionSweepJob - Pings every websocket subscriber and evicts the
// connections that no longer answer
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(hub, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep job uses the cron expression "*/30 * * * * *", running every
// thirty seconds. A subscriber that misses one ping deadline is dropped from
// the registry and its connection closed.
package jobs

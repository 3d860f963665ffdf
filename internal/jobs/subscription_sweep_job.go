package jobs

import (
	"context"
	"log/slog"
	"time"

	"tracking/internal/adapters/out/ws"

	"github.com/robfig/cron/v3"
)

const (
	sweepSchedule     = "*/30 * * * * *"
	sweepPingDeadline = 10 * time.Second
)

// SubscriptionSweepJob periodically pings every websocket subscriber and
// drops the connections that fail to accept the ping.
type SubscriptionSweepJob struct {
	hub    *ws.Hub
	cron   *cron.Cron
	logger *slog.Logger
}

// NewSubscriptionSweepJob creates the sweep job over the given hub.
func NewSubscriptionSweepJob(hub *ws.Hub, logger *slog.Logger) *SubscriptionSweepJob {
	return &SubscriptionSweepJob{
		hub:    hub,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "subscription_sweep_job"),
	}
}

// Start begins the sweep job on its thirty second schedule.
func (j *SubscriptionSweepJob) Start() error {
	_, err := j.cron.AddFunc(sweepSchedule, func() {
		ctx := context.Background()
		evicted := j.hub.Ping(time.Now().Add(sweepPingDeadline))
		if evicted > 0 {
			j.logger.InfoContext(ctx, "Evicted stale websocket subscribers",
				"evicted", evicted, "remaining", j.hub.Count())
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Subscription sweep job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep job.
func (j *SubscriptionSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Subscription sweep job stopped")
}

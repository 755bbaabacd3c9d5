package usecase

import (
	"context"
	"time"

	"legtracker/internal/ports"
)

// Scheduler wires the cron driver with the dashboard rebuild.
type Scheduler struct {
	driver    ports.Scheduler
	dashboard *Dashboard
}

// NewScheduler returns a helper to start/stop recurring rebuilds.
func NewScheduler(driver ports.Scheduler, dashboard *Dashboard) *Scheduler {
	return &Scheduler{driver: driver, dashboard: dashboard}
}

// Start registers the rebuild with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.dashboard == nil {
		return nil
	}

	job := func(trigger time.Time) {
		// Failures are logged by Rebuild; the previous build keeps serving.
		_ = s.dashboard.Rebuild(ctx, trigger)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"legtracker/internal/ports"
)

// CronScheduler runs a job on a standard 5-field cron expression.
type CronScheduler struct {
	spec     string
	location *time.Location
	logger   *slog.Logger

	mu   sync.Mutex
	cron *cron.Cron
	stop chan struct{}
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler for spec evaluated in loc.
func NewCronScheduler(spec string, loc *time.Location, logger *slog.Logger) *CronScheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &CronScheduler{spec: spec, location: loc, logger: logger}
}

// Validate parses the cron expression without scheduling anything.
func Validate(spec string) error {
	if _, err := parser().Parse(spec); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return nil
}

func parser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Start registers job and starts ticking. Overlapping runs are skipped while a
// previous job is still going. The scheduler stops when ctx is cancelled.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron != nil {
		return nil
	}

	cr := cron.New(
		cron.WithParser(parser()),
		cron.WithLocation(c.location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := cr.AddFunc(c.spec, func() { job(time.Now().In(c.location)) }); err != nil {
		return fmt.Errorf("schedule %q: %w", c.spec, err)
	}

	cr.Start()
	stop := make(chan struct{})
	c.cron = cr
	c.stop = stop
	c.info("scheduler started", "cron", c.spec, "timezone", c.location.String())

	go func() {
		select {
		case <-ctx.Done():
			_ = c.Stop(context.Background())
		case <-stop:
		}
	}()

	return nil
}

// Stop halts the scheduler and waits for a running job or ctx, whichever
// comes first.
func (c *CronScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	cr, stop := c.cron, c.stop
	c.cron, c.stop = nil, nil
	c.mu.Unlock()

	if cr == nil {
		return nil
	}
	close(stop)

	done := cr.Stop()
	select {
	case <-done.Done():
		c.info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next reports when the job fires next after from.
func (c *CronScheduler) Next(from time.Time) (time.Time, error) {
	schedule, err := parser().Parse(c.spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression %q: %w", c.spec, err)
	}
	return schedule.Next(from.In(c.location)), nil
}

func (c *CronScheduler) info(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Info(msg, args...)
	}
}

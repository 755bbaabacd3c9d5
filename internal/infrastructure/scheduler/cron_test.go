package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := Validate("0 * * * *"); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
	if err := Validate("@hourly"); err != nil {
		t.Fatalf("descriptor rejected: %v", err)
	}
	if err := Validate("not a cron"); err == nil {
		t.Fatalf("invalid spec accepted")
	}
}

func TestNext(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("30 6 * * *", time.UTC, nil)
	from := time.Date(2025, 2, 1, 7, 0, 0, 0, time.UTC)

	next, err := s.Next(from)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	want := time.Date(2025, 2, 2, 6, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("next = %v, want %v", next, want)
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("bogus", nil, nil)
	if err := s.Start(context.Background(), func(time.Time) {}); err == nil {
		t.Fatalf("expected error for bad spec")
	}
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewCronScheduler("@every 1h", time.UTC, nil)
	if err := s.Start(ctx, func(time.Time) {}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(ctx, func(time.Time) {}); err != nil {
		t.Fatalf("second Start should be a no-op: %v", err)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("second Stop should be a no-op: %v", err)
	}
}

func TestStopReleasesContextWatcher(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("@every 1h", time.UTC, nil)
	if err := s.Start(context.Background(), func(time.Time) {}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	s.mu.Lock()
	stop := s.stop
	s.mu.Unlock()

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	select {
	case <-stop:
	case <-time.After(time.Second):
		t.Fatalf("stop channel not closed; context watcher would leak")
	}

	if err := s.Start(context.Background(), func(time.Time) {}); err != nil {
		t.Fatalf("restart after Stop: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}

// Package scheduler wraps gocron to fire reminders and timers at their due
// time.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs one-shot jobs for reminders and timers.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	mu        sync.Mutex
	running   bool
}

// New creates a scheduler. It must be started with Start before jobs fire.
func New(logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "scheduler")

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    log,
	}, nil
}

// Start begins the scheduler's internal ticking.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler started")
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to complete.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.logger.Debug("Stopping scheduler, waiting for jobs")
	err := s.scheduler.Shutdown()
	if err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
	} else {
		s.logger.Info("Scheduler stopped")
	}

	s.running = false
	return err
}

// ScheduleAt registers fn to run once at the given time. The time must be in
// the future: gocron rejects one-time jobs with a past start date, so callers
// handle already-due work themselves.
func (s *Scheduler) ScheduleAt(at time.Time, name string, fn func(context.Context)) error {
	_, err := s.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at)),
		gocron.NewTask(
			func(ctx context.Context) {
				s.logger.Info("Running scheduled job", "job_name", name)
				start := time.Now()
				fn(ctx)
				s.logger.Info("Finished scheduled job", "job_name", name, "duration", time.Since(start))
			},
			context.Background(),
		),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job %q: %w", name, err)
	}

	s.logger.Debug("Scheduled one-shot job", "job_name", name, "at", at)
	return nil
}

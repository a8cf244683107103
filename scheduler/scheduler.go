package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// JobFunc is a function that can be scheduled.
type JobFunc func(ctx context.Context) error

// Scheduler runs background jobs on fixed intervals.
type Scheduler struct {
	gocron gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new scheduler.
func New() (*Scheduler, error) {
	gocronScheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		gocron: gocronScheduler,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// AddJob registers a named job to run on the given interval. Overlapping runs
// of the same job are skipped.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn JobFunc) error {
	_, err := s.gocron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			log.Debug("running scheduled job", "job", name)
			if err := fn(s.ctx); err != nil {
				log.Error("scheduled job failed", "job", name, "error", err)
			}
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job %q: %w", name, err)
	}
	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.gocron.Start()
	log.Info("job scheduler started")
}

// Stop stops the scheduler and cancels running jobs.
func (s *Scheduler) Stop() {
	s.cancel()
	if err := s.gocron.Shutdown(); err != nil {
		log.Error("failed to shut down scheduler", "error", err)
	}
}

// Package schedule runs the pipeline on a cron schedule.
//
// The scheduler serializes runs: a slow scrape and a manual trigger never
// overlap. Scheduled runs hand their result to a notify callback; manual
// triggers return the result to the caller instead, so command handlers
// can reply in place.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/logger"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/pipeline"
)

// DefaultSpec scrapes four times a day.
const DefaultSpec = "0 */6 * * *"

// Delay before the first run after Start, so the process is fully up
// (polling loop, signal handlers) before the first scrape begins.
const startupDelay = 5 * time.Second

// Scheduler triggers pipeline runs on a cron spec.
type Scheduler struct {
	cron   *cron.Cron
	runner *pipeline.Runner
	notify func(*pipeline.Result)

	mu sync.Mutex // serializes runs
}

// New creates a scheduler that runs the pipeline per the cron spec and
// passes each scheduled result to notify. notify may be nil.
func New(spec string, runner *pipeline.Runner, notify func(*pipeline.Result)) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		runner: runner,
		notify: notify,
	}

	if _, err := c.AddFunc(spec, s.runAndNotify); err != nil {
		return nil, fmt.Errorf("parsing schedule %q: %w", spec, err)
	}

	return s, nil
}

// Start begins scheduled execution and kicks off an initial run shortly
// after boot, so a restarted bot doesn't wait a full interval to catch up.
func (s *Scheduler) Start() {
	s.cron.Start()
	time.AfterFunc(startupDelay, func() {
		go s.runAndNotify()
	})
}

// Stop halts scheduled execution. A run already in flight finishes.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Trigger runs the pipeline immediately and returns the result without
// notifying, so the caller can format its own reply.
func (s *Scheduler) Trigger(ctx context.Context) (*pipeline.Result, error) {
	return s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) (*pipeline.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner.Run(ctx)
}

func (s *Scheduler) runAndNotify() {
	result, err := s.run(context.Background())
	if err != nil {
		logger.Error("scheduled run failed", nil, err)
		return
	}
	if s.notify != nil {
		s.notify(result)
	}
}

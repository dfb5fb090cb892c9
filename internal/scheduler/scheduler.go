package scheduler

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/outbox"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule drains the outbox every five minutes.
const DefaultSchedule = "0 */5 * * * *"

// drainTimeout bounds a single scheduled drain.
const drainTimeout = time.Minute

// Drainer pushes pending outbox ops.
type Drainer interface {
	Drain(ctx context.Context) outbox.Result
}

// Scheduler runs the periodic outbox drain.
type Scheduler struct {
	cron     *cron.Cron
	drainer  Drainer
	schedule string
}

// New creates a Scheduler. An empty schedule uses DefaultSchedule.
func New(schedule string, drainer Drainer) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	return &Scheduler{cron: c, drainer: drainer, schedule: schedule}
}

// Start registers the drain job and starts the scheduler.
func (s *Scheduler) Start() error {
	log.Info("Starting cron scheduler", "schedule", s.schedule)
	if _, err := s.cron.AddFunc(s.schedule, s.runDrain); err != nil {
		log.Error("Failed to schedule outbox drain", "error", err)
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running drain to finish.
func (s *Scheduler) Stop() {
	log.Info("Stopping cron scheduler...")
	<-s.cron.Stop().Done()
	log.Info("Cron scheduler stopped")
}

// RunNow triggers the drain job outside the schedule.
func (s *Scheduler) RunNow() outbox.Result {
	return s.drain()
}

func (s *Scheduler) runDrain() {
	s.drain()
}

func (s *Scheduler) drain() outbox.Result {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	res := s.drainer.Drain(ctx)
	switch {
	case res.Error != "":
		log.Warn("Outbox drain stopped early", "pushed", res.Pushed, "remaining", res.Remaining, "error", res.Error)
	case res.Note != "":
		log.Debug("Outbox drain skipped", "note", res.Note, "remaining", res.Remaining)
	case res.Pushed > 0:
		log.Info("Outbox drained", "pushed", res.Pushed, "remaining", res.Remaining)
	}
	return res
}

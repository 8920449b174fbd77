package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs scans on a cron schedule.
type Scheduler struct {
	runner *Runner
	cron   *cron.Cron
	logger *zap.Logger

	mu     sync.Mutex
	cronID cron.EntryID
}

func NewScheduler(runner *Runner, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{runner: runner, cron: cron.New(), logger: logger}
}

// Start schedules scans with a standard five-field cron expression.
func (s *Scheduler) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(schedule, s.tick)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	s.cronID = id
	s.cron.Start()
	s.logger.Info("scan schedule started", zap.String("schedule", schedule))
	return nil
}

// tick runs one scan, skipping when the previous one is still going.
func (s *Scheduler) tick() {
	if _, err := s.runner.RunOnce(context.Background()); err != nil {
		if errors.Is(err, ErrScanInProgress) {
			s.logger.Info("scheduled scan skipped: scan in progress")
			return
		}
		s.logger.Error("scheduled scan failed", zap.Error(err))
	}
}

// Next returns the next scheduled run, zero when not started.
func (s *Scheduler) Next() cron.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron.Entry(s.cronID)
}

// Stop stops the schedule and returns a context done once running jobs end.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

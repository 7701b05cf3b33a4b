package aggregator

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the recurring aggregation cadence. Ticks are fire-and-forget;
// the engine's reentrancy guard is the only overlap protection.
type Scheduler struct {
	cron    *cron.Cron
	engine  *Engine
	spec    string
	entryID cron.EntryID
	logger  *log.Logger
}

func NewScheduler(engine *Engine, intervalHours int, logger *log.Logger) *Scheduler {
	if intervalHours <= 0 {
		intervalHours = 6
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		cron:   cron.New(),
		engine: engine,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
		logger: logger,
	}
}

// Start registers the recurring run, replacing any prior registration.
func (s *Scheduler) Start() error {
	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
		s.entryID = 0
	}

	id, err := s.cron.AddFunc(s.spec, func() {
		go s.engine.RunAll(context.Background())
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.entryID = id

	s.cron.Start()
	s.logger.Printf("[Scheduler] Started spec=%s", s.spec)
	return nil
}

// Stop cancels the timer. Safe to call when already stopped.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Printf("[Scheduler] Stopped")
}

// TriggerNow runs one aggregation synchronously and returns its summaries.
func (s *Scheduler) TriggerNow(ctx context.Context) []RunSummary {
	return s.engine.RunAll(ctx)
}

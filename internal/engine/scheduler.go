package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler periodically re-prices every stored item.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger

	repriceEntryID cron.EntryID
}

// NewScheduler creates a new Scheduler that re-prices on interval.
func NewScheduler(
	eng *Engine,
	repriceInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	id, err := c.AddFunc("@every "+repriceInterval.String(), s.runReprice)
	if err != nil {
		return nil, err
	}
	s.repriceEntryID = id

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextReprice returns the next scheduled re-pricing run, or the zero time
// before Start.
func (s *Scheduler) NextReprice() time.Time {
	return s.cron.Entry(s.repriceEntryID).Next
}

func (s *Scheduler) runReprice() {
	ctx := context.Background()
	s.log.Info("scheduled reprice starting")
	summary, err := s.engine.RepriceAll(ctx)
	if err != nil {
		s.log.Error("scheduled reprice failed", "error", err)
		return
	}
	s.log.Info("scheduled reprice finished", "processed", summary.Processed, "priced", summary.Priced)
}

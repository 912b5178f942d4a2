// Package scheduler keeps the store current by running incremental
// sync passes on a cron schedule.
package scheduler

import (
	"context"
	"fmt"

	"StockVault/internal/syncer"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler manages the periodic sync task.
type Scheduler struct {
	cron *cron.Cron
	sync *syncer.Synchronizer
	log  *logrus.Entry
	ctx  context.Context
}

// New creates a Scheduler bound to ctx; a cancelled context stops any
// in-flight run at symbol granularity.
func New(ctx context.Context, sync *syncer.Synchronizer, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		sync: sync,
		log:  log.WithField("component", "scheduler"),
		ctx:  ctx,
	}
}

// Register adds the incremental sync task under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runIncremental); err != nil {
		return fmt.Errorf("register incremental sync: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("scheduler stopped")
}

// RunNow executes an incremental sync immediately (manual trigger).
func (s *Scheduler) RunNow() {
	s.runIncremental()
}

func (s *Scheduler) runIncremental() {
	s.log.Info("scheduled incremental sync starting")
	summary, err := s.sync.Run(s.ctx, syncer.ModeIncremental)
	if err != nil {
		s.log.WithError(err).Error("scheduled incremental sync failed")
		return
	}
	s.log.WithField("summary", summary.String()).Info("scheduled incremental sync done")
}

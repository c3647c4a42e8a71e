package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"SynthChart/internal/collector"
	"SynthChart/internal/model"
	"SynthChart/internal/recorder"
)

// Target is one pair chart kept fresh by the scheduler.
type Target struct {
	Base   model.CurrencyKey
	Quote  model.CurrencyKey
	Period model.Period
}

// Scheduler refreshes the configured pair charts on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Targets   []Target
	Logger    *logrus.Logger
	Ctx       context.Context

	mu sync.Mutex     // one refresh at a time
	wg sync.WaitGroup // refreshes started outside cron
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, rec recorder.Recorder, targets []Target, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Recorder:  rec,
		Targets:   targets,
		Logger:    logger,
		Ctx:       ctx,
	}
}

// Register adds the refresh task under the given cron expression.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, func() { s.refresh() }); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for every running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.wg.Wait()
	s.Logger.Info("scheduler stopped")
}

// RunNow executes one refresh immediately and returns how many targets failed.
func (s *Scheduler) RunNow() int {
	s.wg.Add(1)
	defer s.wg.Done()
	return s.refresh()
}

// RunInBackground starts one refresh without waiting for it.
func (s *Scheduler) RunInBackground() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.refresh()
	}()
}

func (s *Scheduler) refresh() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()
	log := s.Logger.WithField("run_id", runID)
	log.Infof("refreshing %d pair charts", len(s.Targets))

	failed := 0
	for i, t := range s.Targets {
		if s.Ctx.Err() != nil {
			log.Warn("refresh cancelled")
			return failed + len(s.Targets) - i
		}
		entry := log.WithFields(logrus.Fields{
			"pair":   t.Base.String() + "/" + t.Quote.String(),
			"period": t.Period.Label,
		})

		chart, err := s.Collector.CollectPair(s.Ctx, t.Base, t.Quote, t.Period)
		if err != nil {
			entry.WithError(err).Error("collect pair chart")
			failed++
			continue
		}
		if err := s.Recorder.RecordPairChart(runID, chart); err != nil {
			entry.WithError(err).Error("record pair chart")
			failed++
			continue
		}
		entry.WithField("candles", len(chart.Candles)).Info("pair chart recorded")
	}
	return failed
}

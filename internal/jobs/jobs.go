// Package jobs runs the scheduled background work: the daily FX rate refresh
// and the daily traded-price refresh.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/config"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/service"
)

// Scheduler owns the cron instance and the jobs registered on it.
type Scheduler struct {
	cron      *cron.Cron
	fxService *service.FxService
}

// NewScheduler creates a Scheduler and registers the configured jobs.
// Schedules use standard five-field cron expressions.
func NewScheduler(cfg config.JobsConfig, fxService *service.FxService) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		fxService: fxService,
	}

	if _, err := s.cron.AddFunc(cfg.FxRefreshSchedule, s.refreshRates); err != nil {
		return nil, fmt.Errorf("invalid fx refresh schedule %q: %w", cfg.FxRefreshSchedule, err)
	}
	if _, err := s.cron.AddFunc(cfg.PriceRefreshSchedule, s.refreshPrices); err != nil {
		return nil, fmt.Errorf("invalid price refresh schedule %q: %w", cfg.PriceRefreshSchedule, err)
	}

	return s, nil
}

// Start begins running the schedule in its own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the schedule and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) refreshRates() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.fxService.RefreshRates(ctx); err != nil {
		log.Printf("scheduled fx refresh failed: %v", err)
		return
	}
	log.Printf("scheduled fx refresh completed")
}

func (s *Scheduler) refreshPrices() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := s.fxService.RefreshTradedPrices(ctx)
	if err != nil {
		log.Printf("scheduled price refresh failed: %v", err)
		return
	}
	log.Printf("scheduled price refresh completed: %d updated, %d skipped, %d failed",
		result.Updated, result.Skipped, len(result.Failed))
}

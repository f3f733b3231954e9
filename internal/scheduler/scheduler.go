package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/commodity-costing/internal/config"
	"github.com/mamadbah2/commodity-costing/internal/service/reporting"
)

// Reporter produces and stores the periodic wastage report.
type Reporter interface {
	GenerateWeeklyReport(ctx context.Context, now time.Time) (string, []reporting.CommoditySummary, error)
	SaveSummaries(ctx context.Context, reportDate time.Time, summaries []reporting.CommoditySummary) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reporter Reporter
	schedule string
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler running jobs in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, reporter Reporter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	// Standard 5-field cron expressions (min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:     c,
		reporter: reporter,
		schedule: cfg.CronSchedule,
		location: loc,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the weekly wastage report and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddFunc(s.schedule, s.runWeeklyReport); err != nil {
		return fmt.Errorf("schedule weekly report: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runWeeklyReport() {
	s.logger.Info("generating weekly wastage report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := s.now().In(s.location)
	report, summaries, err := s.reporter.GenerateWeeklyReport(ctx, now)
	if err != nil {
		s.logger.Error("failed to generate weekly report", zap.Error(err))
		return
	}

	if err := s.reporter.SaveSummaries(ctx, now, summaries); err != nil {
		s.logger.Error("failed to save weekly summaries", zap.Error(err))
		return
	}

	s.logger.Info("weekly report generated", zap.Int("commodities", len(summaries)), zap.String("report", report))
}

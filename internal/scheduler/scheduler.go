package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"nexdata/internal/config"
	"nexdata/internal/domain/models"
	"nexdata/internal/repository/sheets"
	"nexdata/internal/service/inventory"
	"nexdata/internal/service/reporting"
)

// SummaryWriter persists daily summary snapshots.
type SummaryWriter interface {
	SaveDailySummary(ctx context.Context, summary models.DailySummary) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	store        *inventory.Store
	reportingSvc *reporting.Service
	summaries    SummaryWriter
	exporter     sheets.Repository
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The summary writer and the
// sheet exporter may each be nil; the corresponding step is skipped.
func NewScheduler(cfg config.Config, store *inventory.Store, reportingSvc *reporting.Service, summaries SummaryWriter, exporter sheets.Repository, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:         c,
		store:        store,
		reportingSvc: reportingSvc,
		summaries:    summaries,
		exporter:     exporter,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	if s.summaries == nil && s.exporter == nil {
		s.logger.Info("no summary backends configured, scheduler idle")
		return
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.writeDailySummary)
	if err != nil {
		s.logger.Error("failed to schedule daily summary", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) writeDailySummary() {
	s.logger.Info("generating daily summary")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary := s.reportingSvc.BuildDailySummary(s.store.Records(), time.Now())

	if s.summaries != nil {
		if err := s.summaries.SaveDailySummary(ctx, summary); err != nil {
			s.logger.Error("failed to persist daily summary", zap.Error(err))
		} else {
			s.logger.Info("daily summary persisted", zap.Int("records", summary.RecordCount))
		}
	}

	if s.exporter != nil {
		if err := s.exporter.AppendSummary(ctx, summary); err != nil {
			s.logger.Error("failed to export daily summary", zap.Error(err))
		}
	}
}

// Package scheduler runs the end-of-day reporting job: snapshot the day's
// totals into the store, export the row to the spreadsheet when configured,
// and push a summary to the alert webhook when configured.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/abiwaumi/tablewater/internal/config"
	"github.com/abiwaumi/tablewater/internal/domain/models"
	"github.com/abiwaumi/tablewater/internal/repository"
	"github.com/abiwaumi/tablewater/internal/repository/sheets"
	"github.com/abiwaumi/tablewater/internal/service/reporting"
	"github.com/abiwaumi/tablewater/pkg/clients/alert"
)

// Scheduler manages the daily report cron job.
type Scheduler struct {
	cron         *cron.Cron
	cfg          config.ReportingConfig
	reportingSvc *reporting.Service
	store        repository.Store
	exporter     sheets.Exporter
	alerts       alert.Client
	logger       *zap.Logger
}

// NewScheduler creates a scheduler in the configured timezone. The exporter
// and alert client are optional; nil disables the corresponding step.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, store repository.Store, exporter sheets.Exporter, alerts alert.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		cfg:          cfg,
		reportingSvc: reportingSvc,
		store:        store,
		exporter:     exporter,
		alerts:       alerts,
		logger:       logger,
	}
}

// Start registers and starts the daily report job.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailyReport); err != nil {
		s.logger.Error("failed to schedule daily report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s.logger.Info("generating daily report")

	report, err := s.reportingSvc.BuildDailyReport(ctx, time.Now())
	if err != nil {
		s.logger.Error("failed to build daily report", zap.Error(err))
		return
	}

	if err := s.store.SaveDailyReport(ctx, report); err != nil {
		s.logger.Error("failed to save daily report", zap.Error(err))
		return
	}

	if s.exporter != nil {
		if err := s.exporter.AppendDailyReport(ctx, report); err != nil {
			s.logger.Error("failed to export daily report", zap.Error(err))
		}
	}

	if s.alerts != nil {
		if err := s.alerts.Send(ctx, formatReport(report)); err != nil {
			s.logger.Error("failed to send daily report alert", zap.Error(err))
		} else {
			s.logger.Info("daily report alert sent", zap.String("date", report.Date))
		}
	}
}

func formatReport(r models.DailyReport) string {
	msg := fmt.Sprintf(
		"Daily report %s: %d bags produced, %d sold, revenue ₦%.2f, expenses ₦%.2f, net profit ₦%.2f.",
		r.Date, r.BagsProduced, r.BagsSold, r.Revenue, r.Expenses, r.NetProfit,
	)
	if r.LowStockCount > 0 {
		msg += fmt.Sprintf(" %d resource(s) below the restock threshold.", r.LowStockCount)
	}
	return msg
}

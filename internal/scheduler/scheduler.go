package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/config"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/service/reporting"
	"github.com/ANI-CPU-tech/STOCK-MATE/pkg/clients/alert"
)

// Scheduler manages scheduled tasks: the close-of-day sales report and the
// low-stock sweep.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	notifier     alert.Client
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The notifier may be nil
// when no webhook is configured.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, notifier alert.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard five-field cron. Config has
	// already validated the timezone name.
	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		logger.Warn("falling back to host timezone", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:         c,
		reportingSvc: reportingSvc,
		notifier:     notifier,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the cron entries and starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("close_of_day", s.cfg.Reporting.CloseOfDaySchedule),
		zap.String("low_stock", s.cfg.Reporting.LowStockSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CloseOfDaySchedule, s.runCloseOfDay); err != nil {
		s.logger.Error("failed to schedule close of day", zap.Error(err))
	}

	if _, err := s.cron.AddFunc(s.cfg.Reporting.LowStockSchedule, s.runLowStockSweep); err != nil {
		s.logger.Error("failed to schedule low stock sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runCloseOfDay() {
	s.logger.Info("running close of day")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.reportingSvc.CloseOfDay(ctx)
	if err != nil {
		s.logger.Error("close of day failed", zap.Error(err))
		return
	}

	if s.notifier == nil {
		return
	}

	n := alert.Notification{
		Kind:    alert.KindDailyReport,
		Message: s.reportingSvc.FormatSummary(report),
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Error("failed to send daily report notification", zap.Error(err))
	}
}

func (s *Scheduler) runLowStockSweep() {
	low := s.reportingSvc.LowStock(s.cfg.Reporting.LowStockThreshold)
	if len(low) == 0 {
		return
	}

	s.logger.Warn("low stock detected", zap.Int("products", len(low)))

	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n := alert.Notification{
		Kind:    alert.KindLowStock,
		Message: fmt.Sprintf("%d product(s) at or below %d units.", len(low), s.cfg.Reporting.LowStockThreshold),
	}
	for _, p := range low {
		n.Items = append(n.Items, alert.StockRow{ProductID: p.ID, Name: p.Name, Quantity: p.Quantity})
	}

	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Error("failed to send low stock notification", zap.Error(err))
	}
}

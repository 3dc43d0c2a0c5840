// Package scheduler runs the periodic low-stock report export.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/erazemk/inventorypro/internal/config"
	"github.com/erazemk/inventorypro/internal/export"
	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/report"
)

// InventorySource lists the current inventory.
type InventorySource interface {
	List(ctx context.Context) []model.InventoryItem
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	inventory InventorySource
	cfg       config.ReportingConfig
	location  *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduler creates a new scheduler instance. Schedules are evaluated in
// cfg.Timezone.
func NewScheduler(cfg config.ReportingConfig, inventory InventorySource, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		inventory: inventory,
		cfg:       cfg,
		location:  loc,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Start registers the low-stock export and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runLowStockReport); err != nil {
		return fmt.Errorf("scheduling low-stock report: %w", err)
	}
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule), zap.String("dir", s.cfg.Dir))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runLowStockReport() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	path, rows, err := s.WriteLowStockReport(ctx)
	if err != nil {
		s.logger.Error("failed to write low-stock report", zap.Error(err))
		return
	}
	s.logger.Info("low-stock report written", zap.String("path", path), zap.Int("rows", rows))
}

// WriteLowStockReport writes the current low-stock report to the report
// directory and returns its path and row count.
func (s *Scheduler) WriteLowStockReport(ctx context.Context) (string, int, error) {
	r, err := report.Generate(report.Options{Type: report.TypeLowStock}, s.inventory.List(ctx), nil)
	if err != nil {
		return "", 0, err
	}

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("creating report directory: %w", err)
	}
	date := s.now().In(s.location).Format(model.DateLayout)
	path := filepath.Join(s.cfg.Dir, report.FileName(report.TypeLowStock, date))

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("creating report file: %w", err)
	}
	if err := export.WriteReport(f, r); err != nil {
		f.Close()
		return "", 0, err
	}
	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("closing report file: %w", err)
	}

	return path, len(r.Rows), nil
}

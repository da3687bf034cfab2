package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// Reporter produces the scheduled reports.
type Reporter interface {
	RentalDigest(ctx context.Context, now time.Time) (string, error)
	SnapshotStock(ctx context.Context, now time.Time) (*models.StockSnapshot, error)
	ExportStockToSheet(ctx context.Context, now time.Time) (int, error)
}

// Notifier delivers a message. whatsapp.MessagingService implements it.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reporter Reporter
	notifier Notifier
	cfg      config.Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance. notifier may be nil, in which
// case the rental digest is only logged.
func NewScheduler(cfg config.Config, reporter Reporter, notifier Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(cfg.Reporting.Location())),
		reporter: reporter,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("rental_digest", s.cfg.Reporting.RentalDigestSchedule),
		zap.String("stock_snapshot", s.cfg.Reporting.StockSnapshotSchedule),
		zap.String("timezone", s.cfg.Reporting.Timezone))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.RentalDigestSchedule, s.runJob("rental digest", s.RunRentalDigest)); err != nil {
		return fmt.Errorf("schedule rental digest: %w", err)
	}
	if _, err := s.cron.AddFunc(s.cfg.Reporting.StockSnapshotSchedule, s.runJob("stock snapshot", s.RunStockSnapshot)); err != nil {
		return fmt.Errorf("schedule stock snapshot: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runJob(name string, job func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.logger.Error("scheduled job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Info("scheduled job completed", zap.String("job", name), zap.Duration("duration", time.Since(start)))
	}
}

// RunRentalDigest builds the rental digest and sends it to the configured
// WhatsApp recipient.
func (s *Scheduler) RunRentalDigest(ctx context.Context) error {
	digest, err := s.reporter.RentalDigest(ctx, s.now())
	if err != nil {
		return fmt.Errorf("build rental digest: %w", err)
	}

	to := s.cfg.WhatsApp.NotifyTo
	if s.notifier == nil || to == "" {
		s.logger.Info("rental digest not sent, no recipient configured", zap.String("digest", digest))
		return nil
	}

	return s.notifier.SendOutbound(ctx, models.OutboundMessageRequest{To: to, Message: digest})
}

// RunStockSnapshot stores a stock snapshot and mirrors the stock list to the
// spreadsheet. Either sink may be disabled.
func (s *Scheduler) RunStockSnapshot(ctx context.Context) error {
	now := s.now()
	var errs []error

	if snapshot, err := s.reporter.SnapshotStock(ctx, now); err != nil {
		if !errors.Is(err, reporting.ErrSnapshotsDisabled) {
			errs = append(errs, fmt.Errorf("snapshot stock: %w", err))
		}
	} else {
		s.logger.Debug("stock snapshot saved", zap.Int("total", snapshot.Total), zap.Int("low_stock", snapshot.LowStock))
	}

	if rows, err := s.reporter.ExportStockToSheet(ctx, now); err != nil {
		if !errors.Is(err, reporting.ErrSheetsDisabled) {
			errs = append(errs, fmt.Errorf("export stock sheet: %w", err))
		}
	} else {
		s.logger.Debug("stock sheet updated", zap.Int("rows", rows))
	}

	return errors.Join(errs...)
}

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/reporting"
)

type fakeReporter struct {
	snapshotErr error
	sheetErr    error
	snapshots   int
	exports     int
}

func (f *fakeReporter) RentalDigest(_ context.Context, now time.Time) (string, error) {
	return "digest " + now.Format("2006-01-02"), nil
}

func (f *fakeReporter) SnapshotStock(context.Context, time.Time) (*models.StockSnapshot, error) {
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	f.snapshots++
	return &models.StockSnapshot{Total: 3}, nil
}

func (f *fakeReporter) ExportStockToSheet(context.Context, time.Time) (int, error) {
	if f.sheetErr != nil {
		return 0, f.sheetErr
	}
	f.exports++
	return 3, nil
}

type fakeNotifier struct {
	sent []models.OutboundMessageRequest
}

func (f *fakeNotifier) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	f.sent = append(f.sent, req)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		WhatsApp: config.WhatsAppConfig{NotifyTo: "2547000"},
		Reporting: config.ReportingConfig{
			RentalDigestSchedule:  "0 9 * * *",
			StockSnapshotSchedule: "0 20 * * *",
			Timezone:              "UTC",
		},
	}
}

func TestRunRentalDigestSendsToRecipient(t *testing.T) {
	notifier := &fakeNotifier{}
	s := NewScheduler(testConfig(), &fakeReporter{}, notifier, nil)
	s.now = func() time.Time { return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC) }

	if err := s.RunRentalDigest(context.Background()); err != nil {
		t.Fatalf("RunRentalDigest: %v", err)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].To != "2547000" || notifier.sent[0].Message != "digest 2024-06-15" {
		t.Errorf("unexpected sends %+v", notifier.sent)
	}
}

func TestRunRentalDigestWithoutRecipient(t *testing.T) {
	cfg := testConfig()
	cfg.WhatsApp.NotifyTo = ""
	notifier := &fakeNotifier{}

	if err := NewScheduler(cfg, &fakeReporter{}, notifier, nil).RunRentalDigest(context.Background()); err != nil {
		t.Fatalf("RunRentalDigest: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("expected nothing sent, got %+v", notifier.sent)
	}
}

func TestRunStockSnapshotSkipsDisabledSinks(t *testing.T) {
	reporter := &fakeReporter{snapshotErr: reporting.ErrSnapshotsDisabled, sheetErr: reporting.ErrSheetsDisabled}
	if err := NewScheduler(testConfig(), reporter, nil, nil).RunStockSnapshot(context.Background()); err != nil {
		t.Fatalf("expected disabled sinks to be skipped, got %v", err)
	}
}

func TestRunStockSnapshotReportsFailures(t *testing.T) {
	boom := errors.New("mongo down")
	reporter := &fakeReporter{snapshotErr: boom}

	err := NewScheduler(testConfig(), reporter, nil, nil).RunStockSnapshot(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected snapshot failure, got %v", err)
	}
	if reporter.exports != 1 {
		t.Error("sheet export should still run when the snapshot fails")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.RentalDigestSchedule = "every morning"

	s := NewScheduler(cfg, &fakeReporter{}, nil, nil)
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("expected an invalid schedule error")
	}
}

package reporting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/analytics"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/export"
)

const (
	dateLayout      = "2006-01-02"
	stockSheetRange = "Stock!A:J"
	lowStockLimit   = 10
)

var (
	// ErrSnapshotsDisabled is returned when no snapshot store is configured.
	ErrSnapshotsDisabled = errors.New("stock snapshots are not configured")
	// ErrSheetsDisabled is returned when no spreadsheet is configured.
	ErrSheetsDisabled = errors.New("sheets export is not configured")
)

type ProductSource interface {
	All(ctx context.Context, params models.ListParams) ([]models.Product, error)
	LowStock(ctx context.Context) ([]models.Product, error)
}

type SalesSource interface {
	MonthlySellingReport(ctx context.Context, params models.ListParams) ([]models.MonthlySale, error)
}

type RentalSource interface {
	All(ctx context.Context, params models.ListParams) ([]models.Rental, error)
}

// SnapshotStore persists stock snapshots. LatestStockSnapshot returns an
// error matching models.ErrNoSnapshot when empty.
type SnapshotStore interface {
	SaveStockSnapshot(ctx context.Context, snapshot models.StockSnapshot) error
	LatestStockSnapshot(ctx context.Context) (*models.StockSnapshot, error)
}

type SheetWriter interface {
	AppendRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// Dependencies are the data sources and optional sinks of the Service.
// Snapshots and Sheet may be nil.
type Dependencies struct {
	Products  ProductSource
	Sales     SalesSource
	Rentals   RentalSource
	Snapshots SnapshotStore
	Sheet     SheetWriter
	Location  *time.Location
}

// Service builds the stock, sales and rental reports served over HTTP and
// WhatsApp.
type Service struct {
	deps   Dependencies
	loc    *time.Location
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(deps Dependencies, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{deps: deps, loc: loc, logger: logger}
}

// StockReport is one page of the filtered product list with statistics over
// the whole filtered set.
type StockReport struct {
	Page        analytics.Page[models.Product] `json:"page"`
	Stats       analytics.StockStats           `json:"stats"`
	GeneratedAt time.Time                      `json:"generatedAt"`
}

// StockReport fetches every product and applies q locally.
func (s *Service) StockReport(ctx context.Context, q analytics.ProductQuery) (*StockReport, error) {
	products, err := s.deps.Products.All(ctx, models.ListParams{})
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	filtered := q.Sort(q.Filter(products))
	return &StockReport{
		Page:        analytics.Paginate(filtered, q.Page, q.PageSize),
		Stats:       analytics.CalculateStats(filtered),
		GeneratedAt: time.Now().In(s.loc),
	}, nil
}

// ExportStockCSV writes every product matching q, ignoring pagination.
func (s *Service) ExportStockCSV(ctx context.Context, q analytics.ProductQuery, w io.Writer) error {
	products, err := s.deps.Products.All(ctx, models.ListParams{})
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	return export.WriteStockCSV(w, q.Sort(q.Filter(products)))
}

// ExportStockToSheet appends a dated row per product to the stock sheet and
// returns the number of rows written.
func (s *Service) ExportStockToSheet(ctx context.Context, now time.Time) (int, error) {
	if s.deps.Sheet == nil {
		return 0, ErrSheetsDisabled
	}

	products, err := s.deps.Products.All(ctx, models.ListParams{})
	if err != nil {
		return 0, fmt.Errorf("load products: %w", err)
	}

	date := now.In(s.loc).Format(dateLayout)
	rows := make([][]interface{}, 0, len(products))
	for _, p := range analytics.Sort(products, analytics.ProductSortFields["name"], false) {
		row := []interface{}{date}
		for _, cell := range export.StockRow(p) {
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	if err := s.deps.Sheet.AppendRows(ctx, stockSheetRange, rows); err != nil {
		return 0, fmt.Errorf("export stock sheet: %w", err)
	}
	s.logger.Info("stock exported to sheet", zap.Int("rows", len(rows)))
	return len(rows), nil
}

// SnapshotStock stores the current stock statistics.
func (s *Service) SnapshotStock(ctx context.Context, now time.Time) (*models.StockSnapshot, error) {
	if s.deps.Snapshots == nil {
		return nil, ErrSnapshotsDisabled
	}

	products, err := s.deps.Products.All(ctx, models.ListParams{})
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	snapshot := newSnapshot(analytics.CalculateStats(products), now.In(s.loc))
	if err := s.deps.Snapshots.SaveStockSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	s.logger.Info("stock snapshot stored", zap.Int("products", snapshot.Total))
	return &snapshot, nil
}

func newSnapshot(stats analytics.StockStats, now time.Time) models.StockSnapshot {
	y, m, d := now.Date()
	return models.StockSnapshot{
		Date:        time.Date(y, m, d, 0, 0, 0, 0, now.Location()),
		Total:       stats.Total,
		InStock:     stats.InStock,
		LowStock:    stats.LowStock,
		OutOfStock:  stats.OutOfStock,
		TotalValue:  stats.TotalValue.InexactFloat64(),
		Categories:  stats.Categories,
		PriceRanges: stats.PriceRanges,
		CreatedAt:   now,
	}
}

// StockSummary is the one-message stock overview, compared against the last
// stored snapshot when one exists.
func (s *Service) StockSummary(ctx context.Context) (string, error) {
	products, err := s.deps.Products.All(ctx, models.ListParams{})
	if err != nil {
		return "", fmt.Errorf("load products: %w", err)
	}
	stats := analytics.CalculateStats(products)

	msg := fmt.Sprintf("Stock: %d products, %d in stock, %d low, %d out. Value %s.",
		stats.Total, stats.InStock, stats.LowStock, stats.OutOfStock, export.FormatINR(stats.TotalValue))

	if s.deps.Snapshots == nil {
		return msg, nil
	}
	last, err := s.deps.Snapshots.LatestStockSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, models.ErrNoSnapshot) {
			s.logger.Warn("latest snapshot lookup failed", zap.Error(err))
		}
		return msg, nil
	}

	return msg + fmt.Sprintf(" Since %s: %+d products, %+d low, %+d out.",
		last.Date.In(s.loc).Format(dateLayout),
		stats.Total-last.Total, stats.LowStock-last.LowStock, stats.OutOfStock-last.OutOfStock), nil
}

// LowStockSummary lists the products the API reports as low on stock.
func (s *Service) LowStockSummary(ctx context.Context) (string, error) {
	products, err := s.deps.Products.LowStock(ctx)
	if err != nil {
		return "", fmt.Errorf("load low stock: %w", err)
	}
	if len(products) == 0 {
		return "Low stock: nothing to reorder.", nil
	}

	products = analytics.Sort(products, analytics.ProductSortFields["quantity"], false)

	var b strings.Builder
	fmt.Fprintf(&b, "Low stock: %d products.", len(products))
	for i, p := range products {
		if i == lowStockLimit {
			fmt.Fprintf(&b, "\n…and %d more", len(products)-lowStockLimit)
			break
		}
		fmt.Fprintf(&b, "\n- %s: %s", p.Name, analytics.FormatQuantity(p))
	}
	return b.String(), nil
}

// SalesReport is a year of monthly sales plus the years that have data.
type SalesReport struct {
	Year    int                      `json:"year"`
	Product string                   `json:"product,omitempty"`
	Months  []analytics.MonthSummary `json:"months"`
	Years   []int                    `json:"years"`
	Totals  []analytics.YearSummary  `json:"totals"`
}

// MonthlySales builds the sales report of year; zero means the current year.
// A non-empty productID restricts the whole report to that product's sales.
func (s *Service) MonthlySales(ctx context.Context, year int, productID string) (*SalesReport, error) {
	if year == 0 {
		year = time.Now().In(s.loc).Year()
	}

	records, err := s.deps.Sales.MonthlySellingReport(ctx, models.ListParams{})
	if err != nil {
		return nil, fmt.Errorf("load monthly sales: %w", err)
	}

	if productID != "" {
		records = analytics.ProductRecords(records, productID)
	}

	return &SalesReport{
		Year:    year,
		Product: productID,
		Months:  analytics.MonthlyBreakdown(records, year),
		Years:   analytics.AvailableYears(records),
		Totals:  analytics.YearlyTotals(records),
	}, nil
}

// SalesSummary is the one-message sales overview of year.
func (s *Service) SalesSummary(ctx context.Context, year int) (string, error) {
	report, err := s.MonthlySales(ctx, year, "")
	if err != nil {
		return "", err
	}

	revenue := decimal.Zero
	bills := 0
	best := -1
	for i, m := range report.Months {
		revenue = revenue.Add(m.TotalRevenue)
		bills += m.BillsCount
		if m.TotalRevenue.IsPositive() && (best < 0 || m.TotalRevenue.GreaterThan(report.Months[best].TotalRevenue)) {
			best = i
		}
	}

	if best < 0 {
		return fmt.Sprintf("Sales %d: no sales recorded.", report.Year), nil
	}
	return fmt.Sprintf("Sales %d: %s across %d bills. Best month: %s (%s).",
		report.Year, export.FormatINR(revenue), bills,
		report.Months[best].MonthName, export.FormatINR(report.Months[best].TotalRevenue)), nil
}

// RentalNotices classifies every open rental at now, most urgent first.
func (s *Service) RentalNotices(ctx context.Context, now time.Time) ([]analytics.RentalNotice, error) {
	rentals, err := s.deps.Rentals.All(ctx, models.ListParams{})
	if err != nil {
		return nil, fmt.Errorf("load rentals: %w", err)
	}
	return analytics.Notices(rentals, now.In(s.loc)), nil
}

// RentalDigest renders the rentals needing attention as a text message.
func (s *Service) RentalDigest(ctx context.Context, now time.Time) (string, error) {
	notices, err := s.RentalNotices(ctx, now)
	if err != nil {
		return "", err
	}

	date := now.In(s.loc).Format(dateLayout)
	if len(notices) == 0 {
		return fmt.Sprintf("Rental digest %s: no open rentals.", date), nil
	}

	counts := analytics.CountByUrgency(notices)
	var b strings.Builder
	fmt.Fprintf(&b, "Rental digest %s\nOverdue: %d, due today: %d, due soon: %d, later: %d",
		date, counts[analytics.Overdue], counts[analytics.DueToday], counts[analytics.DueSoon], counts[analytics.Normal])

	for _, n := range notices {
		if n.Notice.Class == analytics.Normal {
			continue
		}
		fmt.Fprintf(&b, "\n- %s: %s %s", rentalLabel(n.Rental), n.Notice.Label, n.Notice.Value)
	}
	return b.String(), nil
}

func rentalLabel(r models.Rental) string {
	label := r.RentalNumber
	if label == "" {
		label = r.ID
	}
	if customer := r.Customer.Label(); customer != "" {
		label += " (" + customer + ")"
	}
	return label
}

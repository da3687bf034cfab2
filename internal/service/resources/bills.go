package resources

import (
	"context"
	"net/http"

	"github.com/mamadbah2/stockdesk/internal/analytics"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/backend"
)

// BillService wraps /bills and the sales reports derived from them.
type BillService struct {
	t Transport
}

// NewBillService builds a BillService.
func NewBillService(t Transport) *BillService {
	return &BillService{t: t}
}

// List returns one page of bills.
func (s *BillService) List(ctx context.Context, params models.ListParams) (models.ListResult[models.Bill], error) {
	return fetchList[models.Bill](ctx, s.t, "/bills", params.Values(), "Failed to fetch bills", "bills")
}

// All returns every bill matching params across all pages.
func (s *BillService) All(ctx context.Context, params models.ListParams) ([]models.Bill, error) {
	return fetchAll[models.Bill](ctx, s.t, "/bills", params, "Failed to fetch bills", "bills")
}

// Get returns one bill.
func (s *BillService) Get(ctx context.Context, id string) (models.Bill, error) {
	return fetchOne[models.Bill](ctx, s.t, http.MethodGet, path("bills", id), nil, "Failed to fetch bill", "bill")
}

// Create submits a new bill; it needs at least one item.
func (s *BillService) Create(ctx context.Context, b models.Bill) (models.Bill, error) {
	if len(b.Items) == 0 {
		return models.Bill{}, models.NewValidationError("items", "add at least one item")
	}
	return fetchOne[models.Bill](ctx, s.t, http.MethodPost, "/bills", b.ForWrite(), "Failed to create bill", "bill")
}

// Update replaces a bill.
func (s *BillService) Update(ctx context.Context, id string, b models.Bill) (models.Bill, error) {
	return fetchOne[models.Bill](ctx, s.t, http.MethodPut, path("bills", id), b.ForWrite(), "Failed to update bill", "bill")
}

// Delete removes a bill.
func (s *BillService) Delete(ctx context.Context, id string) error {
	return call(ctx, s.t, http.MethodDelete, path("bills", id), nil, "Failed to delete bill")
}

// Stats falls back to summarizing the bill list when /bills/stats is missing.
func (s *BillService) Stats(ctx context.Context) (models.BillStats, error) {
	stats, err := fetchOne[models.BillStats](ctx, s.t, http.MethodGet, "/bills/stats", nil, "Failed to fetch bill stats", "stats")
	if err == nil || !backend.IsNotFound(err) {
		return stats, err
	}

	bills, err := s.All(ctx, models.ListParams{})
	if err != nil {
		return models.BillStats{}, err
	}
	return analytics.BillSummary(bills), nil
}

// SellingReport returns per-product sales totals for the params' date range.
func (s *BillService) SellingReport(ctx context.Context, params models.ListParams) ([]models.ProductSale, error) {
	result, err := fetchList[models.ProductSale](ctx, s.t, "/bills/selling-report", params.Values(), "Failed to fetch selling report", "report", "products")
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// MonthlySellingReport returns the server's per product-month rollups.
func (s *BillService) MonthlySellingReport(ctx context.Context, params models.ListParams) ([]models.MonthlySale, error) {
	result, err := fetchList[models.MonthlySale](ctx, s.t, "/bills/monthly-selling-report", params.Values(), "Failed to fetch monthly selling report", "report", "monthlyReport")
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// ProductSelling returns the monthly rollups of a single product.
func (s *BillService) ProductSelling(ctx context.Context, productID string, params models.ListParams) ([]models.MonthlySale, error) {
	result, err := fetchList[models.MonthlySale](ctx, s.t, path("bills", "product-selling", productID), params.Values(), "Failed to fetch product selling report", "report", "sales")
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

package resources

import (
	"context"
	"net/http"
	"strings"

	"github.com/mamadbah2/stockdesk/internal/analytics"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/backend"
)

// ProductService wraps /products.
type ProductService struct {
	t Transport
}

// NewProductService builds a ProductService.
func NewProductService(t Transport) *ProductService {
	return &ProductService{t: t}
}

// List returns one page of products.
func (s *ProductService) List(ctx context.Context, params models.ListParams) (models.ListResult[models.Product], error) {
	return fetchList[models.Product](ctx, s.t, "/products", params.Values(), "Failed to fetch products", "products")
}

// All returns every product matching params across all pages.
func (s *ProductService) All(ctx context.Context, params models.ListParams) ([]models.Product, error) {
	return fetchAll[models.Product](ctx, s.t, "/products", params, "Failed to fetch products", "products")
}

// Get returns one product.
func (s *ProductService) Get(ctx context.Context, id string) (models.Product, error) {
	return fetchOne[models.Product](ctx, s.t, http.MethodGet, path("products", id), nil, "Failed to fetch product", "product")
}

// Create validates and creates a product.
func (s *ProductService) Create(ctx context.Context, p models.Product) (models.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return models.Product{}, err
	}
	return fetchOne[models.Product](ctx, s.t, http.MethodPost, "/products", p.ForWrite(), "Failed to create product", "product")
}

// Update validates and replaces a product.
func (s *ProductService) Update(ctx context.Context, id string, p models.Product) (models.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return models.Product{}, err
	}
	return fetchOne[models.Product](ctx, s.t, http.MethodPut, path("products", id), p.ForWrite(), "Failed to update product", "product")
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return call(ctx, s.t, http.MethodDelete, path("products", id), nil, "Failed to delete product")
}

// Stats returns stock statistics. When the API has no stats endpoint they are
// computed from the full product list instead.
func (s *ProductService) Stats(ctx context.Context) (analytics.StockStats, error) {
	stats, err := fetchOne[analytics.StockStats](ctx, s.t, http.MethodGet, "/products/stats", nil, "Failed to fetch product stats", "stats")
	if err == nil {
		if stats.Categories == nil {
			stats.Categories = map[string]int{}
		}
		if stats.PriceRanges == nil {
			stats.PriceRanges = map[string]int{}
		}
		return stats, nil
	}
	if !backend.IsNotFound(err) {
		return analytics.StockStats{}, err
	}

	products, err := s.All(ctx, models.ListParams{})
	if err != nil {
		return analytics.StockStats{}, err
	}
	return analytics.CalculateStats(products), nil
}

// Report returns the product report list filtered server-side by params.
func (s *ProductService) Report(ctx context.Context, params models.ListParams) (models.ListResult[models.Product], error) {
	return fetchList[models.Product](ctx, s.t, "/products/report", params.Values(), "Failed to fetch product report", "products", "report")
}

// LowStock returns products the API considers low on stock.
func (s *ProductService) LowStock(ctx context.Context) ([]models.Product, error) {
	result, err := fetchList[models.Product](ctx, s.t, "/products/stock/low-stock", nil, "Failed to fetch low stock products", "products", "lowStockProducts")
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// Categories returns the distinct category names used by products.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	result, err := fetchList[models.Ref](ctx, s.t, "/products/categories", nil, "Failed to fetch product categories", "categories")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(result.Items))
	for _, ref := range result.Items {
		if label := ref.Label(); label != "" {
			names = append(names, label)
		}
	}
	return names, nil
}

// ValidateProduct checks a product form before submission.
func ValidateProduct(p models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return models.NewValidationError("name", "product name is required")
	}
	if p.Price.IsNegative() {
		return models.NewValidationError("price", "price cannot be negative")
	}
	if p.Quantity < 0 {
		return models.NewValidationError("quantity", "quantity cannot be negative")
	}
	switch p.Unit {
	case "", models.UnitPiece, models.UnitLiter, models.UnitKilogram:
	default:
		return models.NewValidationError("unit", "unit must be piece, liter or kilogram")
	}
	return nil
}

package resources

import (
	"context"
	"net/http"
	"strings"

	"github.com/mamadbah2/stockdesk/internal/analytics"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/backend"
)

// SupplierService wraps /suppliers.
type SupplierService struct {
	t Transport
}

// NewSupplierService builds a SupplierService.
func NewSupplierService(t Transport) *SupplierService {
	return &SupplierService{t: t}
}

// List returns one page of suppliers.
func (s *SupplierService) List(ctx context.Context, params models.ListParams) (models.ListResult[models.Supplier], error) {
	return fetchList[models.Supplier](ctx, s.t, "/suppliers", params.Values(), "Failed to fetch suppliers", "suppliers")
}

// All returns every supplier matching params across all pages.
func (s *SupplierService) All(ctx context.Context, params models.ListParams) ([]models.Supplier, error) {
	return fetchAll[models.Supplier](ctx, s.t, "/suppliers", params, "Failed to fetch suppliers", "suppliers")
}

// Get returns one supplier.
func (s *SupplierService) Get(ctx context.Context, id string) (models.Supplier, error) {
	return fetchOne[models.Supplier](ctx, s.t, http.MethodGet, path("suppliers", id), nil, "Failed to fetch supplier", "supplier")
}

// Create validates and submits a new supplier.
func (s *SupplierService) Create(ctx context.Context, sup models.Supplier) (models.Supplier, error) {
	if err := ValidateSupplier(sup); err != nil {
		return models.Supplier{}, err
	}
	return fetchOne[models.Supplier](ctx, s.t, http.MethodPost, "/suppliers", sup, "Failed to create supplier", "supplier")
}

// Update validates and replaces a supplier.
func (s *SupplierService) Update(ctx context.Context, id string, sup models.Supplier) (models.Supplier, error) {
	if err := ValidateSupplier(sup); err != nil {
		return models.Supplier{}, err
	}
	return fetchOne[models.Supplier](ctx, s.t, http.MethodPut, path("suppliers", id), sup, "Failed to update supplier", "supplier")
}

// SetStatus changes the status of a supplier.
func (s *SupplierService) SetStatus(ctx context.Context, id string, status models.Status) (models.Supplier, error) {
	return fetchOne[models.Supplier](ctx, s.t, http.MethodPatch, path("suppliers", id, "status"),
		statusUpdate{Status: string(status)}, "Failed to update supplier status", "supplier")
}

// Delete removes a supplier.
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	return call(ctx, s.t, http.MethodDelete, path("suppliers", id), nil, "Failed to delete supplier")
}

// Stats falls back to counting the supplier list when /suppliers/stats is missing.
func (s *SupplierService) Stats(ctx context.Context) (models.SupplierStats, error) {
	stats, err := fetchOne[models.SupplierStats](ctx, s.t, http.MethodGet, "/suppliers/stats", nil, "Failed to fetch supplier stats", "stats")
	if err == nil || !backend.IsNotFound(err) {
		return stats, err
	}

	suppliers, err := s.All(ctx, models.ListParams{})
	if err != nil {
		return models.SupplierStats{}, err
	}
	return analytics.SupplierSummary(suppliers), nil
}

// Products lists the products supplied by a supplier.
func (s *SupplierService) Products(ctx context.Context, id string) ([]models.Product, error) {
	result, err := fetchList[models.Product](ctx, s.t, path("suppliers", id, "products"), nil, "Failed to fetch supplier products", "products")
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// ValidateSupplier checks a supplier form before submission.
func ValidateSupplier(sup models.Supplier) error {
	if strings.TrimSpace(sup.Name) == "" {
		return models.NewValidationError("name", "supplier name is required")
	}
	if sup.Email != "" && !strings.Contains(sup.Email, "@") {
		return models.NewValidationError("email", "enter a valid email address")
	}
	return nil
}

package resources

import (
	"context"
	"net/http"
	"strings"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// ProductItemService wraps /product-items, the individually tracked rental units.
type ProductItemService struct {
	t Transport
}

// NewProductItemService builds a ProductItemService.
func NewProductItemService(t Transport) *ProductItemService {
	return &ProductItemService{t: t}
}

// List returns one page of product items.
func (s *ProductItemService) List(ctx context.Context, params models.ListParams) (models.ListResult[models.ProductItem], error) {
	return fetchList[models.ProductItem](ctx, s.t, "/product-items", params.Values(), "Failed to fetch product items", "productItems")
}

// Get returns one product item.
func (s *ProductItemService) Get(ctx context.Context, id string) (models.ProductItem, error) {
	return fetchOne[models.ProductItem](ctx, s.t, http.MethodGet, path("product-items", id), nil, "Failed to fetch product item", "productItem")
}

// Create validates and submits a new product item.
func (s *ProductItemService) Create(ctx context.Context, item models.ProductItem) (models.ProductItem, error) {
	if err := validateProductItem(item); err != nil {
		return models.ProductItem{}, err
	}
	return fetchOne[models.ProductItem](ctx, s.t, http.MethodPost, "/product-items", item.ForWrite(), "Failed to create product item", "productItem")
}

// Update validates and replaces a product item.
func (s *ProductItemService) Update(ctx context.Context, id string, item models.ProductItem) (models.ProductItem, error) {
	if err := validateProductItem(item); err != nil {
		return models.ProductItem{}, err
	}
	return fetchOne[models.ProductItem](ctx, s.t, http.MethodPut, path("product-items", id), item.ForWrite(), "Failed to update product item", "productItem")
}

// SetStatus changes the status of a product item.
func (s *ProductItemService) SetStatus(ctx context.Context, id string, status models.ProductItemStatus) (models.ProductItem, error) {
	return fetchOne[models.ProductItem](ctx, s.t, http.MethodPatch, path("product-items", id, "status"),
		statusUpdate{Status: string(status)}, "Failed to update product item status", "productItem")
}

// Delete removes a product item.
func (s *ProductItemService) Delete(ctx context.Context, id string) error {
	return call(ctx, s.t, http.MethodDelete, path("product-items", id), nil, "Failed to delete product item")
}

func validateProductItem(item models.ProductItem) error {
	if item.Product.Key() == "" {
		return models.NewValidationError("product", "select a product")
	}
	if strings.TrimSpace(item.SerialNumber) == "" {
		return models.NewValidationError("serialNumber", "serial number is required")
	}
	return nil
}

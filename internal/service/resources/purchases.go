package resources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mamadbah2/stockdesk/internal/analytics"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// PurchaseService wraps /purchases.
type PurchaseService struct {
	t Transport
}

// NewPurchaseService builds a PurchaseService.
func NewPurchaseService(t Transport) *PurchaseService {
	return &PurchaseService{t: t}
}

// List returns one page of purchase orders.
func (s *PurchaseService) List(ctx context.Context, params models.ListParams) (models.ListResult[models.Purchase], error) {
	return fetchList[models.Purchase](ctx, s.t, "/purchases", params.Values(), "Failed to fetch purchases", "purchases")
}

// Get returns one purchase order.
func (s *PurchaseService) Get(ctx context.Context, id string) (models.Purchase, error) {
	return fetchOne[models.Purchase](ctx, s.t, http.MethodGet, path("purchases", id), nil, "Failed to fetch purchase", "purchase")
}

// Create validates and submits a new purchase order.
func (s *PurchaseService) Create(ctx context.Context, p models.Purchase) (models.Purchase, error) {
	if err := ValidatePurchase(p); err != nil {
		return models.Purchase{}, err
	}
	return fetchOne[models.Purchase](ctx, s.t, http.MethodPost, "/purchases", p.ForWrite(), "Failed to create purchase", "purchase")
}

// Update validates and replaces a purchase order.
func (s *PurchaseService) Update(ctx context.Context, id string, p models.Purchase) (models.Purchase, error) {
	if err := ValidatePurchase(p); err != nil {
		return models.Purchase{}, err
	}
	return fetchOne[models.Purchase](ctx, s.t, http.MethodPut, path("purchases", id), p.ForWrite(), "Failed to update purchase", "purchase")
}

// SetStatus changes the status of a purchase order.
func (s *PurchaseService) SetStatus(ctx context.Context, id string, status models.PurchaseStatus) (models.Purchase, error) {
	return fetchOne[models.Purchase](ctx, s.t, http.MethodPatch, path("purchases", id, "status"),
		statusUpdate{Status: string(status)}, "Failed to update purchase status", "purchase")
}

// Delete removes a purchase order.
func (s *PurchaseService) Delete(ctx context.Context, id string) error {
	return call(ctx, s.t, http.MethodDelete, path("purchases", id), nil, "Failed to delete purchase")
}

type receiveRequest struct {
	Items []models.ReceiveLine `json:"items"`
}

// Receive records goods received against a purchase order. requested maps
// product ids to quantities; each is clamped to what is still outstanding on
// the current order before anything is sent.
func (s *PurchaseService) Receive(ctx context.Context, id string, requested map[string]int64) (models.Purchase, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Purchase{}, err
	}
	if current.Status == models.PurchaseCancelled {
		return models.Purchase{}, models.NewValidationError("status", "cannot receive a cancelled purchase")
	}

	lines, err := analytics.PrepareReceipt(current.Items, requested)
	if err != nil {
		return models.Purchase{}, err
	}

	return fetchOne[models.Purchase](ctx, s.t, http.MethodPost, path("purchases", id, "receive"),
		receiveRequest{Items: lines}, "Failed to receive purchase items", "purchase")
}

// AddPayment records a payment against a purchase order.
func (s *PurchaseService) AddPayment(ctx context.Context, id string, payment models.Payment) (models.Purchase, error) {
	if !payment.Amount.IsPositive() {
		return models.Purchase{}, models.NewValidationError("amount", "payment amount must be greater than zero")
	}
	return fetchOne[models.Purchase](ctx, s.t, http.MethodPost, path("purchases", id, "payments"), payment, "Failed to add payment", "purchase")
}

// ValidatePurchase checks a purchase order form before submission.
func ValidatePurchase(p models.Purchase) error {
	if p.Supplier.Key() == "" {
		return models.NewValidationError("supplier", "select a supplier")
	}
	if len(p.Items) == 0 {
		return models.NewValidationError("items", "add at least one item")
	}
	for i, item := range p.Items {
		if item.Quantity <= 0 {
			return models.NewValidationError(fmt.Sprintf("items[%d]", i), "quantity must be greater than zero")
		}
		if item.UnitCost.IsNegative() {
			return models.NewValidationError(fmt.Sprintf("items[%d]", i), "unit cost cannot be negative")
		}
	}
	return nil
}

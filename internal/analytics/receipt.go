package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// ErrNothingToReceive rejects a receive submission whose lines are all zero.
var ErrNothingToReceive = models.NewValidationError("items", "receive at least one item")

// MaxReceivable is how many more units of item may still be received.
func MaxReceivable(item models.PurchaseItem) int64 {
	return max(item.Quantity-item.ReceivedQuantity, 0)
}

// ClampReceived bounds a requested quantity into [0, MaxReceivable(item)].
func ClampReceived(item models.PurchaseItem, requested int64) int64 {
	return min(max(requested, 0), MaxReceivable(item))
}

// PrepareReceipt turns requested quantities, keyed by product id, into receive
// lines. A product's quantity is spent down across its purchase lines in order,
// each line taking at most what it can still receive. Lines that end up at
// zero are dropped and an all-zero submission is rejected.
func PrepareReceipt(items []models.PurchaseItem, requested map[string]int64) ([]models.ReceiveLine, error) {
	remaining := make(map[string]int64, len(requested))
	for id, qty := range requested {
		remaining[id] = qty
	}

	lines := make([]models.ReceiveLine, 0, len(items))
	for _, item := range items {
		id := item.Product.Key()
		if id == "" {
			continue
		}
		qty := ClampReceived(item, remaining[id])
		if qty == 0 {
			continue
		}
		remaining[id] -= qty
		lines = append(lines, models.ReceiveLine{ProductID: id, ReceivedQuantity: qty})
	}

	if len(lines) == 0 {
		return nil, ErrNothingToReceive
	}
	return lines, nil
}

// InwardTotal sums quantity × purchase cost over items.
func InwardTotal(items []models.InwardItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.PurchaseCost.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}

// PriceInward sets every line's TotalCost to quantity × purchase cost and the
// inward's TotalAmount to their sum.
func PriceInward(in *models.Inward) {
	for i := range in.Items {
		item := &in.Items[i]
		item.TotalCost = item.PurchaseCost.Mul(decimal.NewFromInt(item.Quantity))
	}
	in.TotalAmount = InwardTotal(in.Items)
}

// ValidateInward checks an inward form before submission.
func ValidateInward(in models.Inward) error {
	if in.Supplier.Key() == "" {
		return models.NewValidationError("supplier", "select a supplier")
	}
	if len(in.Items) == 0 {
		return models.NewValidationError("items", "add at least one item")
	}
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.Product.Key() == "" && item.ProductName == "" {
			return models.NewValidationError(field, "select a product")
		}
		if item.Quantity <= 0 {
			return models.NewValidationError(field, "quantity must be greater than zero")
		}
		if item.PurchaseCost.IsNegative() {
			return models.NewValidationError(field, "purchase cost cannot be negative")
		}
	}
	return nil
}

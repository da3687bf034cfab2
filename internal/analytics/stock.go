// Package analytics holds the pure aggregation helpers behind dashboards and
// reports. Nothing here performs I/O or keeps state between calls: every
// classification is recomputed from raw fields on each call.
package analytics

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// Stock thresholds on display quantity. Fixed, not configurable.
const (
	LowStockThreshold = 10
	noCategory        = "No Category"
	unitScale         = 1000
)

// StockStatus is the derived availability of a product.
type StockStatus string

const (
	InStock    StockStatus = "in_stock"
	LowStock   StockStatus = "low_stock"
	OutOfStock StockStatus = "out_of_stock"
)

// Price range labels, in ascending order.
const (
	PriceUnder100  = "Under ₹100"
	Price100To499  = "₹100 - ₹499"
	Price500To999  = "₹500 - ₹999"
	Price1kTo4999  = "₹1,000 - ₹4,999"
	Price5000AndUp = "₹5,000+"
)

// PriceRangeLabels lists the price buckets in ascending order.
var PriceRangeLabels = []string{PriceUnder100, Price100To499, Price500To999, Price1kTo4999, Price5000AndUp}

var (
	hundred      = decimal.NewFromInt(100)
	fiveHundred  = decimal.NewFromInt(500)
	thousand     = decimal.NewFromInt(1000)
	fiveThousand = decimal.NewFromInt(5000)
)

// StockStats summarizes a product list.
type StockStats struct {
	Total       int             `json:"total"`
	InStock     int             `json:"inStock"`
	LowStock    int             `json:"lowStock"`
	OutOfStock  int             `json:"outOfStock"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	Categories  map[string]int  `json:"categories"`
	PriceRanges map[string]int  `json:"priceRanges"`
}

func scaledUnit(u models.Unit) bool {
	return u == models.UnitLiter || u == models.UnitKilogram
}

// DisplayQuantity converts the stored quantity to the unit shown to people:
// liters and kilograms are stored ×1000 and rounded to 2 decimals on the way out.
func DisplayQuantity(p models.Product) float64 {
	if scaledUnit(p.Unit) {
		return math.Round(float64(p.Quantity)/unitScale*100) / 100
	}
	return float64(p.Quantity)
}

// UnitLabel is the short suffix for a unit.
func UnitLabel(u models.Unit) string {
	switch u {
	case models.UnitLiter:
		return "L"
	case models.UnitKilogram:
		return "kg"
	default:
		return "pcs"
	}
}

// FormatQuantity renders the display quantity with its unit, e.g. "1.50 L".
func FormatQuantity(p models.Product) string {
	if scaledUnit(p.Unit) {
		return fmt.Sprintf("%.2f %s", DisplayQuantity(p), UnitLabel(p.Unit))
	}
	return fmt.Sprintf("%d %s", p.Quantity, UnitLabel(p.Unit))
}

// ClassifyStock derives the stock status of p.
func ClassifyStock(p models.Product) StockStatus {
	qty := DisplayQuantity(p)
	switch {
	case qty <= 0:
		return OutOfStock
	case qty <= LowStockThreshold:
		return LowStock
	default:
		return InStock
	}
}

// CategoryName is the grouping key of p's category.
func CategoryName(p models.Product) string {
	if name := p.Category.Label(); name != "" {
		return name
	}
	return noCategory
}

// PriceRange returns the bucket label for price.
func PriceRange(price decimal.Decimal) string {
	switch {
	case price.LessThan(hundred):
		return PriceUnder100
	case price.LessThan(fiveHundred):
		return Price100To499
	case price.LessThan(thousand):
		return Price500To999
	case price.LessThan(fiveThousand):
		return Price1kTo4999
	default:
		return Price5000AndUp
	}
}

// StockValue is price × raw quantity; price is defined per stored unit.
func StockValue(p models.Product) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}

// CalculateStats reduces products to summary statistics. A nil or empty list
// yields the zero shape with empty, non-nil maps.
func CalculateStats(products []models.Product) StockStats {
	stats := StockStats{
		TotalValue:  decimal.Zero,
		Categories:  map[string]int{},
		PriceRanges: map[string]int{},
	}

	for _, p := range products {
		stats.Total++

		switch ClassifyStock(p) {
		case OutOfStock:
			stats.OutOfStock++
		case LowStock:
			stats.LowStock++
		default:
			stats.InStock++
		}

		stats.TotalValue = stats.TotalValue.Add(StockValue(p))
		stats.Categories[CategoryName(p)]++
		stats.PriceRanges[PriceRange(p.Price)]++
	}

	return stats
}

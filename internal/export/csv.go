// Package export renders product lists for download and spreadsheet sync.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mamadbah2/stockdesk/internal/analytics"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// StockHeader names the columns of a stock export.
var StockHeader = []string{"Name", "SKU", "Category", "Supplier", "Price", "Quantity", "Unit", "Status", "Stock Value"}

var statusLabels = map[analytics.StockStatus]string{
	analytics.InStock:    "In Stock",
	analytics.LowStock:   "Low Stock",
	analytics.OutOfStock: "Out of Stock",
}

// StatusLabel is the human label of a stock status.
func StatusLabel(s analytics.StockStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// StockRow renders one product in StockHeader order. Amounts are plain
// numbers so spreadsheets can sum them.
func StockRow(p models.Product) []string {
	return []string{
		p.Name,
		p.SKU,
		analytics.CategoryName(p),
		p.Supplier.Label(),
		p.Price.StringFixed(2),
		strconv.FormatFloat(analytics.DisplayQuantity(p), 'f', -1, 64),
		analytics.UnitLabel(p.Unit),
		StatusLabel(analytics.ClassifyStock(p)),
		analytics.StockValue(p).StringFixed(2),
	}
}

// WriteStockCSV writes a header and one row per product.
func WriteStockCSV(w io.Writer, products []models.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(StockHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range products {
		if err := cw.Write(StockRow(p)); err != nil {
			return fmt.Errorf("write csv row for %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

package analytics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// MonthSummary is one calendar month of a yearly breakdown.
type MonthSummary struct {
	Month         int             `json:"month"`
	MonthName     string          `json:"monthName"`
	Year          int             `json:"year"`
	TotalQuantity float64         `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	BillsCount    int             `json:"billsCount"`
}

// YearSummary totals a whole year.
type YearSummary struct {
	Year          int             `json:"year"`
	TotalQuantity float64         `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	BillsCount    int             `json:"billsCount"`
}

func validMonth(m int) bool {
	return m >= 1 && m <= 12
}

// MonthlyBreakdown groups records of year by calendar month, summing across
// products. All twelve months are present; months without records are zero.
func MonthlyBreakdown(records []models.MonthlySale, year int) []MonthSummary {
	months := make([]MonthSummary, 12)
	for i := range months {
		m := time.Month(i + 1)
		months[i] = MonthSummary{Month: int(m), MonthName: m.String(), Year: year, TotalRevenue: decimal.Zero}
	}

	for _, r := range records {
		if r.Year != year || !validMonth(r.Month) {
			continue
		}
		s := &months[r.Month-1]
		s.TotalQuantity += r.TotalQuantity
		s.TotalRevenue = s.TotalRevenue.Add(r.TotalRevenue)
		s.BillsCount += r.BillsCount
	}

	return months
}

// ProductRecords keeps the records of one product.
func ProductRecords(records []models.MonthlySale, productID string) []models.MonthlySale {
	filtered := make([]models.MonthlySale, 0, len(records))
	for _, r := range records {
		if r.ProductID == productID {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ProductBreakdown is MonthlyBreakdown restricted to one product.
func ProductBreakdown(records []models.MonthlySale, productID string, year int) []MonthSummary {
	return MonthlyBreakdown(ProductRecords(records, productID), year)
}

// YearlyTotals sums records per year, most recent year first.
func YearlyTotals(records []models.MonthlySale) []YearSummary {
	byYear := map[int]*YearSummary{}
	for _, r := range records {
		if !validMonth(r.Month) || r.Year <= 0 {
			continue
		}
		y, ok := byYear[r.Year]
		if !ok {
			y = &YearSummary{Year: r.Year, TotalRevenue: decimal.Zero}
			byYear[r.Year] = y
		}
		y.TotalQuantity += r.TotalQuantity
		y.TotalRevenue = y.TotalRevenue.Add(r.TotalRevenue)
		y.BillsCount += r.BillsCount
	}

	out := make([]YearSummary, 0, len(byYear))
	for _, y := range byYear {
		out = append(out, *y)
	}
	slices.SortFunc(out, func(a, b YearSummary) int { return b.Year - a.Year })
	return out
}

// AvailableYears lists the years present in records, most recent first.
func AvailableYears(records []models.MonthlySale) []int {
	totals := YearlyTotals(records)
	years := make([]int, len(totals))
	for i, y := range totals {
		years[i] = y.Year
	}
	return years
}

// SortRecent returns a copy of records ordered by (year, month) descending.
func SortRecent(records []models.MonthlySale) []models.MonthlySale {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b models.MonthlySale) int {
		if a.Year != b.Year {
			return b.Year - a.Year
		}
		return b.Month - a.Month
	})
	return out
}

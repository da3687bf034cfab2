package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// SupplierSummary counts suppliers by status.
func SupplierSummary(suppliers []models.Supplier) models.SupplierStats {
	stats := models.SupplierStats{Total: len(suppliers)}
	for _, s := range suppliers {
		switch s.Status {
		case models.StatusActive:
			stats.Active++
		case models.StatusInactive:
			stats.Inactive++
		case models.StatusPending:
			stats.Pending++
		}
	}
	return stats
}

// BillSummary totals revenue and dues and counts bills by payment status.
func BillSummary(bills []models.Bill) models.BillStats {
	stats := models.BillStats{
		TotalBills:   len(bills),
		TotalRevenue: decimal.Zero,
		TotalDue:     decimal.Zero,
	}
	for _, b := range bills {
		stats.TotalRevenue = stats.TotalRevenue.Add(b.TotalAmount)
		stats.TotalDue = stats.TotalDue.Add(b.DueAmount)
		switch b.PaymentStatus {
		case models.PaymentPaid:
			stats.Paid++
		case models.PaymentPartial:
			stats.Partial++
		case models.PaymentUnpaid:
			stats.Unpaid++
		}
	}
	return stats
}

// UserSummary counts accounts by activity and role.
func UserSummary(users []models.User) models.UserStats {
	stats := models.UserStats{Total: len(users), ByRole: map[models.Role]int{}}
	for _, u := range users {
		if u.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if u.Role != "" {
			stats.ByRole[u.Role]++
		}
	}
	return stats
}

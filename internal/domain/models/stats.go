package models

import "github.com/shopspring/decimal"

// SupplierStats summarizes suppliers by status.
type SupplierStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Pending  int `json:"pending"`
}

// BillStats summarizes bills.
type BillStats struct {
	TotalBills   int             `json:"totalBills"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalDue     decimal.Decimal `json:"totalDue"`
	Paid         int             `json:"paid"`
	Partial      int             `json:"partial"`
	Unpaid       int             `json:"unpaid"`
}

// UserStats summarizes system accounts.
type UserStats struct {
	Total    int          `json:"total"`
	Active   int          `json:"active"`
	Inactive int          `json:"inactive"`
	ByRole   map[Role]int `json:"byRole"`
}

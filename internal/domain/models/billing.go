package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillType distinguishes sales from rental bills.
type BillType string

const (
	BillSale   BillType = "sale"
	BillRental BillType = "rental"
)

// PaymentStatus of a bill.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentUnpaid  PaymentStatus = "unpaid"
)

// BillItem is one billed line.
type BillItem struct {
	Product  *Ref            `json:"product,omitempty"`
	Name     string          `json:"name,omitempty"`
	Quantity float64         `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// Bill is a customer invoice.
type Bill struct {
	ID            string          `json:"_id,omitempty"`
	BillNumber    string          `json:"billNumber,omitempty"`
	Customer      *Ref            `json:"customer,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	BillDate      *time.Time      `json:"billDate,omitempty"`
	Type          BillType        `json:"type,omitempty"`
	Items         []BillItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	DueAmount     decimal.Decimal `json:"dueAmount"`
	PaymentStatus PaymentStatus   `json:"paymentStatus,omitempty"`
}

// MonthlySale is a server-side pre-aggregated per product-month rollup.
type MonthlySale struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName,omitempty"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	TotalQuantity float64         `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	BillsCount    int             `json:"billsCount"`
}

// ProductSale is one product's line in the selling report.
type ProductSale struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName,omitempty"`
	TotalQuantity float64         `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	BillsCount    int             `json:"billsCount"`
}

// RentalStatus of a rental agreement.
type RentalStatus string

const (
	RentalActive   RentalStatus = "active"
	RentalReturned RentalStatus = "returned"
	RentalOverdue  RentalStatus = "overdue"
)

// RentalItem is one rented unit.
type RentalItem struct {
	Product     *Ref            `json:"product,omitempty"`
	ProductItem *Ref            `json:"productItem,omitempty"`
	Quantity    int64           `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// Rental is an equipment rental. Urgency is always derived from
// ExpectedReturnTime, never stored.
type Rental struct {
	ID                 string       `json:"_id,omitempty"`
	RentalNumber       string       `json:"rentalNumber,omitempty"`
	Customer           *Ref         `json:"customer,omitempty"`
	Items              []RentalItem `json:"items"`
	RentedAt           *time.Time   `json:"rentedAt,omitempty"`
	ExpectedReturnTime time.Time    `json:"expectedReturnTime"`
	ReturnedAt         *time.Time   `json:"returnedAt,omitempty"`
	Status             RentalStatus `json:"status,omitempty"`
}

// Role of a system account.
type Role string

const (
	RoleSuperAdmin   Role = "superadmin"
	RoleStockManager Role = "stockmanager"
	RoleBillCounter  Role = "billcounter"
	RoleStaff        Role = "staff"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleStockManager, RoleBillCounter, RoleStaff:
		return true
	}
	return false
}

// User is a system account.
type User struct {
	ID        string     `json:"_id,omitempty"`
	Username  string     `json:"username"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Role      Role       `json:"role"`
	IsActive  bool       `json:"isActive"`
	Password  string     `json:"password,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is a supplier's postal address.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Supplier provides products. Products is free text, not a list of references.
type Supplier struct {
	ID            string     `json:"_id,omitempty"`
	Name          string     `json:"name"`
	ContactPerson string     `json:"contactPerson,omitempty"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Address       Address    `json:"address"`
	Products      []string   `json:"products,omitempty"`
	Status        Status     `json:"status,omitempty"`
	PaymentTerms  string     `json:"paymentTerms,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// PurchaseStatus is the purchase order workflow state.
type PurchaseStatus string

const (
	PurchaseDraft     PurchaseStatus = "draft"
	PurchaseOrdered   PurchaseStatus = "ordered"
	PurchasePartial   PurchaseStatus = "partially_received"
	PurchaseReceived  PurchaseStatus = "received"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

// PurchaseItem is one ordered line. ReceivedQuantity never exceeds Quantity.
type PurchaseItem struct {
	Product          *Ref            `json:"product,omitempty"`
	ProductName      string          `json:"productName,omitempty"`
	Quantity         int64           `json:"quantity"`
	ReceivedQuantity int64           `json:"receivedQuantity"`
	UnitCost         decimal.Decimal `json:"unitCost"`
}

// Payment records money paid against a purchase order.
type Payment struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	Reference string          `json:"reference,omitempty"`
	PaidAt    *time.Time      `json:"paidAt,omitempty"`
}

// Purchase is a purchase order placed with a supplier.
type Purchase struct {
	ID                   string          `json:"_id,omitempty"`
	PurchaseOrderNumber  string          `json:"purchaseOrderNumber,omitempty"`
	Supplier             *Ref            `json:"supplier,omitempty"`
	Items                []PurchaseItem  `json:"items"`
	Status               PurchaseStatus  `json:"status,omitempty"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	Payments             []Payment       `json:"payments,omitempty"`
	OrderDate            *time.Time      `json:"orderDate,omitempty"`
	ExpectedDeliveryDate *time.Time      `json:"expectedDeliveryDate,omitempty"`
	Notes                string          `json:"notes,omitempty"`
}

// ReceiveLine is the quantity received for one purchase line in a receive submission.
type ReceiveLine struct {
	ProductID        string `json:"productId"`
	ReceivedQuantity int64  `json:"receivedQuantity"`
}

// InwardKind selects which inventory an inward feeds.
type InwardKind string

const (
	InwardRental    InwardKind = "rental"
	InwardAccessory InwardKind = "accessory"
)

// InwardStatus is the goods-receipt state.
type InwardStatus string

const (
	InwardPending   InwardStatus = "pending"
	InwardCompleted InwardStatus = "completed"
)

// InwardItem is one received line of an inward.
type InwardItem struct {
	Product      *Ref            `json:"product,omitempty"`
	ProductName  string          `json:"productName,omitempty"`
	BatchNumber  string          `json:"batchNumber,omitempty"`
	PurchaseCost decimal.Decimal `json:"purchaseCost"`
	Condition    string          `json:"condition,omitempty"`
	Quantity     int64           `json:"quantity"`
	TotalCost    decimal.Decimal `json:"totalCost"`
}

// Inward is a goods-receipt record. TotalAmount is the sum of line totals.
type Inward struct {
	ID                    string          `json:"_id,omitempty"`
	Kind                  InwardKind      `json:"-"`
	InwardNumber          string          `json:"inwardNumber,omitempty"`
	ReceivedDate          *time.Time      `json:"receivedDate,omitempty"`
	Supplier              *Ref            `json:"supplier,omitempty"`
	SupplierInvoiceNumber string          `json:"supplierInvoiceNumber,omitempty"`
	Items                 []InwardItem    `json:"items"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	Status                InwardStatus    `json:"status,omitempty"`
	Notes                 string          `json:"notes,omitempty"`
}

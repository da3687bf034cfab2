package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit enumerates how a product's quantity is measured.
type Unit string

const (
	UnitPiece    Unit = "piece"
	UnitLiter    Unit = "liter"
	UnitKilogram Unit = "kilogram"
)

// Product is a stock-keeping item. Quantity is stored in the smallest unit:
// liter and kilogram products are stored in milliliters and grams.
type Product struct {
	ID                 string          `json:"_id,omitempty"`
	Name               string          `json:"name"`
	Category           *Ref            `json:"category,omitempty"`
	Price              decimal.Decimal `json:"price"`
	Quantity           int64           `json:"quantity"`
	Unit               Unit            `json:"unit,omitempty"`
	Supplier           *Ref            `json:"supplier,omitempty"`
	IsSellingAccessory bool            `json:"isSellingAccessory"`
	IsRental           bool            `json:"isRental"`
	MinStockLevel      int64           `json:"minStockLevel,omitempty"`
	SKU                string          `json:"sku,omitempty"`
	Location           string          `json:"location,omitempty"`
	BatchNumber        string          `json:"batchNumber,omitempty"`
	ExpiryDate         *time.Time      `json:"expiryDate,omitempty"`
	CreatedAt          *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time      `json:"updatedAt,omitempty"`
}

// Status values shared by resources that use soft deletion.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// Category groups products. Inactive categories are hidden, not deleted.
type Category struct {
	ID          string     `json:"_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// ProductItemStatus tracks an individual rentable unit.
type ProductItemStatus string

const (
	ProductItemAvailable   ProductItemStatus = "available"
	ProductItemRented      ProductItemStatus = "rented"
	ProductItemMaintenance ProductItemStatus = "maintenance"
)

// ProductItem is one serial-tracked unit of a rental product.
type ProductItem struct {
	ID           string            `json:"_id,omitempty"`
	Product      *Ref              `json:"product,omitempty"`
	SerialNumber string            `json:"serialNumber,omitempty"`
	Status       ProductItemStatus `json:"status,omitempty"`
	Condition    string            `json:"condition,omitempty"`
	Location     string            `json:"location,omitempty"`
	CreatedAt    *time.Time        `json:"createdAt,omitempty"`
}

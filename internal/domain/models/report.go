package models

import (
	"errors"
	"time"
)

// ErrNoSnapshot is returned when no stock snapshot has been stored yet.
var ErrNoSnapshot = errors.New("no stock snapshot stored")

// StockSnapshot is a point-in-time copy of the stock statistics stored in MongoDB.
type StockSnapshot struct {
	Date        time.Time      `bson:"date" json:"date"`
	Total       int            `bson:"total" json:"total"`
	InStock     int            `bson:"in_stock" json:"in_stock"`
	LowStock    int            `bson:"low_stock" json:"low_stock"`
	OutOfStock  int            `bson:"out_of_stock" json:"out_of_stock"`
	TotalValue  float64        `bson:"total_value" json:"total_value"`
	Categories  map[string]int `bson:"categories" json:"categories"`
	PriceRanges map[string]int `bson:"price_ranges" json:"price_ranges"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
}

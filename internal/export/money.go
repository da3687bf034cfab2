package export

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatINR renders an amount in rupees with grouping and two decimals,
// e.g. "₹1,234.50".
func FormatINR(amount decimal.Decimal) string {
	minor := amount.Shift(2).Round(0).IntPart()
	return money.New(minor, money.INR).Display()
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLine is one order row on a customer receipt.
type ReceiptLine struct {
	ItemName string
	Color    string
	Quantity int
	Price    decimal.Decimal
	Subtotal decimal.Decimal
}

// ReceiptData is everything the renderer needs for one customer's receipt.
type ReceiptData struct {
	ShopName     string
	CustomerName string
	IssuedAt     time.Time
	Lines        []ReceiptLine
	Total        decimal.Decimal
}

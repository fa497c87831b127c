package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderResponse is one order line item as the dashboard sees it.
type OrderResponse struct {
	ID               string          `json:"_id"`
	CustomerName     string          `json:"customer_name"`
	ItemName         string          `json:"item_name"`
	Color            string          `json:"color,omitempty"`
	Quantity         int             `json:"quantity"`
	Price            decimal.Decimal `json:"price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	ImageURL         string          `json:"image_url,omitempty"`
	Status           string          `json:"status"`
	OrderGroupID     string          `json:"order_group_id,omitempty"`
	PreparationNotes string          `json:"preparation_notes,omitempty"`
	BillingNotes     string          `json:"billing_notes,omitempty"`
	BillingStatus    string          `json:"billing_status,omitempty"`
	BillingPaidAt    *time.Time      `json:"billing_paid_at,omitempty"`
	CreatedAt        *time.Time      `json:"created_at,omitempty"`
	UpdatedAt        *time.Time      `json:"updated_at,omitempty"`
}

// CustomerGroupResponse groups one customer's orders within a phase.
// TotalItems is filled for preparing, TotalAmount for billing/completed.
type CustomerGroupResponse struct {
	CustomerName string           `json:"customer_name"`
	Orders       []OrderResponse  `json:"orders"`
	TotalItems   int              `json:"total_items,omitempty"`
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
}

// ProductSummaryResponse is the pickup-phase per-product view.
type ProductSummaryResponse struct {
	ProductName    string           `json:"product_name"`
	TotalQuantity  int              `json:"total_quantity"`
	ColorBreakdown map[string]int   `json:"color_breakdown"`
	ImageURL       string           `json:"image_url"`
	Price          *decimal.Decimal `json:"price,omitempty"`
}

// MoveToPreparing request: bulk move of one product's pickup orders.
type MoveToPreparingRequest struct {
	ProductName string `json:"product_name"`
}

// MarkAllPaidRequest request: complete one customer's billing orders.
type MarkAllPaidRequest struct {
	CustomerName string `json:"customer_name"`
}

// UpdateOrderPriceRequest corrects a single order's price while in billing.
type UpdateOrderPriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

// NotesRequest sets free-text preparation or billing notes.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// BulkMoveResponse reports how many orders a bulk transition touched.
type BulkMoveResponse struct {
	Message string `json:"message"`
	Moved   int    `json:"moved"`
}

package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ngvyshop/chatorder-api/internal/domain"
)

// Customer-name resolution states for image-derived orders.
const (
	NameStatusPending = "pending" // image order waiting for a short text reply
	NameStatusUpdated = "updated" // name resolved
)

// Billing states, set only at the billing -> completed transition.
const (
	BillingUnpaid = "unpaid"
	BillingPaid   = "paid"
)

// ImageOrderPrefix marks synthetic item names created for bare image attachments.
const ImageOrderPrefix = "Image Order"

// Order is one line item of a purchase: a (customer, product, color, quantity)
// tuple tied to the conversation sender it arrived from. Line items parsed from
// the same message share an OrderGroupID.
type Order struct {
	ID                 string
	SenderID           string
	CustomerName       string // empty until resolved for image orders
	CustomerNameStatus string // NameStatusPending | NameStatusUpdated
	ItemName           string
	Color              string
	Quantity           int
	Price              decimal.Decimal // copied from the product at reference time
	ImageURL           string
	Status             domain.Status
	OrderGroupID       string
	PreparationNotes   string
	BillingNotes       string
	BillingStatus      string // BillingUnpaid until marked paid
	BillingPaidAt      *time.Time
	MessageID          string // originating message
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Subtotal is price x quantity for this line item.
func (o *Order) Subtotal() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// IsImageOrder reports whether the order was created from a bare image attachment.
func (o *Order) IsImageOrder() bool {
	return strings.HasPrefix(o.ItemName, ImageOrderPrefix)
}

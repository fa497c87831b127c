package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
)

// OrderRepository is the persistence port for orders.
//
// Bulk movers filter by current status, so re-running them after a partial
// failure is a no-op for rows already moved.
type OrderRepository interface {
	Insert(o *entity.Order) error
	GetByID(id string) (*entity.Order, error)

	// LatestPendingNameBySender returns the sender's most recently created
	// order still waiting for a customer name, or nil. A non-nil notBefore
	// bounds how far back the lookup reaches.
	LatestPendingNameBySender(senderID string, notBefore *time.Time) (*entity.Order, error)
	SetCustomerName(id, customerName, nameStatus string) error

	// MoveByProduct moves every order of the product in status from to status
	// to, returning how many rows moved.
	MoveByProduct(itemName string, from, to domain.Status) (int, error)
	UpdateStatus(id string, to domain.Status) error
	// MarkPaidByCustomer moves every billing order of the customer to
	// completed, stamping billing_status=paid and the shared paid timestamp.
	MarkPaidByCustomer(customerName string, paidAt time.Time) (int, error)

	UpdatePrice(id string, price decimal.Decimal) error
	SetPreparationNotes(id, notes string) error
	SetBillingNotes(id, notes string) error

	// PropagatePrice / PropagateImage push a product-level change onto every
	// order row carrying that item name (orders hold copies, not references).
	PropagatePrice(itemName string, price decimal.Decimal) (int, error)
	PropagateImage(itemName, imageURL string) (int, error)

	// ListByStatusAndSender returns the sender's orders in the given status,
	// oldest first. Aggregation views are derived from this in the usecases.
	ListByStatusAndSender(status domain.Status, senderID string) ([]*entity.Order, error)
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/ports"
	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
)

// UnknownCustomer labels orders whose customer name is still unresolved in
// grouped views, and is also their sort key.
const UnknownCustomer = "Unknown Customer"

// OrderUseCase owns the lifecycle state machine and the per-phase groupings.
type OrderUseCase struct {
	orders repository.OrderRepository
	events ports.OrderEventPublisher // nil = disabled
	log    zerolog.Logger
}

// NewOrderUseCase wires the lifecycle manager.
func NewOrderUseCase(orders repository.OrderRepository, events ports.OrderEventPublisher, log zerolog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, events: events, log: log}
}

// MoveToPreparing moves every pickup order of the product to preparing.
// Moving zero orders is a no-op, not an error.
func (uc *OrderUseCase) MoveToPreparing(ctx context.Context, productName string) (int, error) {
	if productName == "" {
		return 0, domain.ErrInvalidInput
	}
	moved, err := uc.orders.MoveByProduct(productName, domain.StatusPickup, domain.StatusPreparing)
	if err != nil {
		return 0, fmt.Errorf("move orders of %q to preparing: %w", productName, err)
	}
	uc.publishMoved(ctx, "product:"+productName, moved, domain.StatusPickup, domain.StatusPreparing)
	return moved, nil
}

// MoveToBilling advances one order from preparing to billing. The transition
// is validated against the state machine, so completed orders can never be
// pulled back into the pipeline.
func (uc *OrderUseCase) MoveToBilling(ctx context.Context, orderID string) error {
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("get order %s: %w", orderID, err)
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if !order.Status.CanTransitionTo(domain.StatusBilling) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, domain.StatusBilling)
	}
	if err := uc.orders.UpdateStatus(orderID, domain.StatusBilling); err != nil {
		return fmt.Errorf("move order %s to billing: %w", orderID, err)
	}
	uc.publishMoved(ctx, "order:"+orderID, 1, order.Status, domain.StatusBilling)
	return nil
}

// MarkAllPaid completes every billing order of the customer, stamping one
// shared paid timestamp. Already-completed orders are untouched by the status
// filter, which also makes a retry after a partial failure a no-op.
func (uc *OrderUseCase) MarkAllPaid(ctx context.Context, customerName string) (int, error) {
	if customerName == "" {
		return 0, domain.ErrInvalidInput
	}
	paidAt := time.Now().UTC()
	moved, err := uc.orders.MarkPaidByCustomer(customerName, paidAt)
	if err != nil {
		return 0, fmt.Errorf("mark orders paid for %q: %w", customerName, err)
	}
	uc.publishMoved(ctx, "customer:"+customerName, moved, domain.StatusBilling, domain.StatusCompleted)
	return moved, nil
}

// UpdatePrice corrects a single order's price, allowed only while the order
// is in billing. Negative prices are rejected before any lookup.
func (uc *OrderUseCase) UpdatePrice(orderID string, price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.ErrNegativePrice
	}
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("get order %s: %w", orderID, err)
	}
	if order == nil || order.Status != domain.StatusBilling {
		return domain.ErrNotFound
	}
	if err := uc.orders.UpdatePrice(orderID, price); err != nil {
		return fmt.Errorf("update price of order %s: %w", orderID, err)
	}
	return nil
}

// SetPreparationNotes stores free-text preparation notes on any order.
func (uc *OrderUseCase) SetPreparationNotes(orderID, notes string) error {
	return uc.setNotes(orderID, notes, uc.orders.SetPreparationNotes)
}

// SetBillingNotes stores free-text billing notes on any order.
func (uc *OrderUseCase) SetBillingNotes(orderID, notes string) error {
	return uc.setNotes(orderID, notes, uc.orders.SetBillingNotes)
}

func (uc *OrderUseCase) setNotes(orderID, notes string, set func(string, string) error) error {
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("get order %s: %w", orderID, err)
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if err := set(orderID, notes); err != nil {
		return fmt.Errorf("set notes on order %s: %w", orderID, err)
	}
	return nil
}

// GroupByCustomer returns the sender's orders in the given phase grouped by
// customer, sorted by customer name ascending. Unresolved names group under
// UnknownCustomer. Preparing groups carry a total item count; billing and
// completed groups carry a monetary total of price x quantity subtotals.
func (uc *OrderUseCase) GroupByCustomer(status domain.Status, senderID string) ([]dto.CustomerGroupResponse, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	orders, err := uc.orders.ListByStatusAndSender(status, senderID)
	if err != nil {
		return nil, fmt.Errorf("list %s orders: %w", status, err)
	}

	groups := map[string]*dto.CustomerGroupResponse{}
	for _, o := range orders {
		name := o.CustomerName
		if name == "" {
			name = UnknownCustomer
		}
		g, ok := groups[name]
		if !ok {
			g = &dto.CustomerGroupResponse{CustomerName: name}
			if status != domain.StatusPreparing {
				zero := decimal.Zero
				g.TotalAmount = &zero
			}
			groups[name] = g
		}
		g.Orders = append(g.Orders, toOrderResponse(o))
		if status == domain.StatusPreparing {
			g.TotalItems += o.Quantity
		} else {
			total := g.TotalAmount.Add(o.Subtotal())
			g.TotalAmount = &total
		}
	}

	result := make([]dto.CustomerGroupResponse, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CustomerName < result[j].CustomerName
	})
	return result, nil
}

func (uc *OrderUseCase) publishMoved(ctx context.Context, subject string, count int, from, to domain.Status) {
	if uc.events == nil || count == 0 {
		return
	}
	if err := uc.events.OrdersMoved(ctx, subject, count, from, to); err != nil {
		uc.log.Warn().Err(err).Str("subject", subject).Msg("publish orders.moved failed")
	}
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	createdAt := o.CreatedAt
	updatedAt := o.UpdatedAt
	return dto.OrderResponse{
		ID:               o.ID,
		CustomerName:     o.CustomerName,
		ItemName:         o.ItemName,
		Color:            o.Color,
		Quantity:         o.Quantity,
		Price:            o.Price,
		Subtotal:         o.Subtotal(),
		ImageURL:         o.ImageURL,
		Status:           string(o.Status),
		OrderGroupID:     o.OrderGroupID,
		PreparationNotes: o.PreparationNotes,
		BillingNotes:     o.BillingNotes,
		BillingStatus:    o.BillingStatus,
		BillingPaidAt:    o.BillingPaidAt,
		CreatedAt:        &createdAt,
		UpdatedAt:        &updatedAt,
	}
}

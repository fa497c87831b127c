package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implements OrderRepository (usable with pool or tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the adapter.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, sender_id, customer_name, customer_name_status, item_name, color, quantity,
	price, image_url, status, order_group_id, preparation_notes, billing_notes,
	billing_status, billing_paid_at, message_id, created_at, updated_at`

// Insert persists one order row.
func (r *OrderRepo) Insert(o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.SenderID, o.CustomerName, o.CustomerNameStatus, o.ItemName, o.Color, o.Quantity,
		o.Price, o.ImageURL, string(o.Status), o.OrderGroupID, o.PreparationNotes, o.BillingNotes,
		o.BillingStatus, o.BillingPaidAt, o.MessageID, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID fetches one order, nil if absent.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// LatestPendingNameBySender returns the sender's most recently created order
// still awaiting a customer name, optionally bounded by notBefore.
func (r *OrderRepo) LatestPendingNameBySender(senderID string, notBefore *time.Time) (*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE sender_id = $1 AND customer_name_status = $2`
	args := []any{senderID, entity.NameStatusPending}
	if notBefore != nil {
		query += ` AND created_at >= $3`
		args = append(args, *notBefore)
	}
	query += ` ORDER BY created_at DESC LIMIT 1`

	o, err := scanOrder(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest pending order: %w", err)
	}
	return o, nil
}

// SetCustomerName resolves the customer name on one order.
func (r *OrderRepo) SetCustomerName(id, customerName, nameStatus string) error {
	query := `
		UPDATE orders
		SET customer_name = $2, customer_name_status = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, customerName, nameStatus, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set customer name: %w", err)
	}
	return nil
}

// MoveByProduct bulk-moves every order of the product in status from to
// status to. The status filter makes retries idempotent.
func (r *OrderRepo) MoveByProduct(itemName string, from, to domain.Status) (int, error) {
	query := `
		UPDATE orders
		SET status = $3, updated_at = $4
		WHERE item_name = $1 AND status = $2`
	tag, err := r.q.Exec(context.Background(), query, itemName, string(from), string(to), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("move orders by product: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// UpdateStatus sets one order's status.
func (r *OrderRepo) UpdateStatus(id string, to domain.Status) error {
	query := `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, string(to), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// MarkPaidByCustomer completes every billing order of the customer with one
// shared paid timestamp.
func (r *OrderRepo) MarkPaidByCustomer(customerName string, paidAt time.Time) (int, error) {
	query := `
		UPDATE orders
		SET status = $2, billing_status = $3, billing_paid_at = $4, updated_at = $4
		WHERE customer_name = $1 AND status = $5`
	tag, err := r.q.Exec(context.Background(), query,
		customerName, string(domain.StatusCompleted), entity.BillingPaid, paidAt, string(domain.StatusBilling),
	)
	if err != nil {
		return 0, fmt.Errorf("mark orders paid: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// UpdatePrice sets one order's price.
func (r *OrderRepo) UpdatePrice(id string, price decimal.Decimal) error {
	query := `UPDATE orders SET price = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, price, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update order price: %w", err)
	}
	return nil
}

// SetPreparationNotes stores preparation notes.
func (r *OrderRepo) SetPreparationNotes(id, notes string) error {
	query := `UPDATE orders SET preparation_notes = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, notes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set preparation notes: %w", err)
	}
	return nil
}

// SetBillingNotes stores billing notes.
func (r *OrderRepo) SetBillingNotes(id, notes string) error {
	query := `UPDATE orders SET billing_notes = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, notes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set billing notes: %w", err)
	}
	return nil
}

// PropagatePrice copies a product-level price onto all its order rows.
func (r *OrderRepo) PropagatePrice(itemName string, price decimal.Decimal) (int, error) {
	query := `UPDATE orders SET price = $2, updated_at = $3 WHERE item_name = $1`
	tag, err := r.q.Exec(context.Background(), query, itemName, price, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("propagate price: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// PropagateImage copies a product-level image URL onto all its order rows.
func (r *OrderRepo) PropagateImage(itemName, imageURL string) (int, error) {
	query := `UPDATE orders SET image_url = $2, updated_at = $3 WHERE item_name = $1`
	tag, err := r.q.Exec(context.Background(), query, itemName, imageURL, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("propagate image: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ListByStatusAndSender returns the sender's orders in the given status,
// oldest first.
func (r *OrderRepo) ListByStatusAndSender(status domain.Status, senderID string) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = $1 AND sender_id = $2
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, string(status), senderID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status string
	err := row.Scan(
		&o.ID, &o.SenderID, &o.CustomerName, &o.CustomerNameStatus, &o.ItemName, &o.Color, &o.Quantity,
		&o.Price, &o.ImageURL, &status, &o.OrderGroupID, &o.PreparationNotes, &o.BillingNotes,
		&o.BillingStatus, &o.BillingPaidAt, &o.MessageID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = domain.Status(status)
	return &o, nil
}

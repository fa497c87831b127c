package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
)

var _ usecase.IntakeTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction so one extracted
// message's order rows land all-or-nothing.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repos bound to the tx, and
// commits or rolls back.
func (r *TxRunner) Run(ctx context.Context, fn func(orders repository.OrderRepository, products repository.ProductRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

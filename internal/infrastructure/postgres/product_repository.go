package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements ProductRepository (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the adapter.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, name_lower, price, image_url, created_at, updated_at`

// ResolveOrCreate inserts the product if its lowercase key is new and returns
// the current row either way. The unique index on name_lower settles
// concurrent identical calls: the loser of the race reads the winner's row.
func (r *ProductRepo) ResolveOrCreate(p *entity.Product) (*entity.Product, error) {
	ctx := context.Background()

	insert := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name_lower) DO NOTHING`
	_, err := r.q.Exec(ctx, insert,
		p.ID, p.Name, p.NameLower, p.Price, p.ImageURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil && !isUniqueViolation(err) {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	return r.GetByNameLower(p.NameLower)
}

// GetByNameLower fetches a product by its canonical key, nil if absent.
func (r *ProductRepo) GetByNameLower(nameLower string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name_lower = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, nameLower).Scan(
		&p.ID, &p.Name, &p.NameLower, &p.Price, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// UpdatePriceByNameLower sets the price; false when no product matches.
func (r *ProductRepo) UpdatePriceByNameLower(nameLower string, price decimal.Decimal) (bool, error) {
	query := `UPDATE products SET price = $2, updated_at = now() WHERE name_lower = $1`
	tag, err := r.q.Exec(context.Background(), query, nameLower, price)
	if err != nil {
		return false, fmt.Errorf("update product price: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateImageByNameLower sets the image URL; false when no product matches.
func (r *ProductRepo) UpdateImageByNameLower(nameLower, imageURL string) (bool, error) {
	query := `UPDATE products SET image_url = $2, updated_at = now() WHERE name_lower = $1`
	tag, err := r.q.Exec(context.Background(), query, nameLower, imageURL)
	if err != nil {
		return false, fmt.Errorf("update product image: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

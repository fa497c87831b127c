package repository

import (
	"github.com/shopspring/decimal"

	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
)

// ProductRepository is the persistence port for the catalog.
// Uniqueness of NameLower is a store-level constraint; ResolveOrCreate must be
// idempotent under concurrent identical calls.
type ProductRepository interface {
	// ResolveOrCreate inserts the product if its lowercase key is new and
	// returns the current row either way.
	ResolveOrCreate(p *entity.Product) (*entity.Product, error)
	GetByNameLower(nameLower string) (*entity.Product, error)
	// UpdatePriceByNameLower / UpdateImageByNameLower return false when no
	// product matches the key.
	UpdatePriceByNameLower(nameLower string, price decimal.Decimal) (bool, error)
	UpdateImageByNameLower(nameLower, imageURL string) (bool, error)
}

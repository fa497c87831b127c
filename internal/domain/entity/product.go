package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog row, identified by its case-insensitive name.
// Created lazily on first reference from an order with price 0 and no image;
// never deleted. NameLower is the canonical key backed by a unique index.
type Product struct {
	ID        string
	Name      string // display name as first seen
	NameLower string
	Price     decimal.Decimal
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

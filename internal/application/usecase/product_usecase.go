package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
	"github.com/ngvyshop/chatorder-api/pkg/textkey"
)

// ProductUseCase owns the catalog: resolve-or-create by case-insensitive name
// and price/image updates that propagate onto existing order rows.
type ProductUseCase struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

// NewProductUseCase wires the catalog.
func NewProductUseCase(products repository.ProductRepository, orders repository.OrderRepository) *ProductUseCase {
	return &ProductUseCase{products: products, orders: orders}
}

// resolveProduct looks up the product by its lowercase key, inserting a
// zero-priced row on first reference. Idempotent under concurrent callers:
// the store's unique index on the key settles races.
func resolveProduct(products repository.ProductRepository, name string, now time.Time) (*entity.Product, error) {
	p := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		NameLower: textkey.Lower(name),
		Price:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	resolved, err := products.ResolveOrCreate(p)
	if err != nil {
		return nil, fmt.Errorf("resolve product %q: %w", name, err)
	}
	return resolved, nil
}

// Resolve returns the product's current price and image, creating it when the
// name is new.
func (uc *ProductUseCase) Resolve(name string) (*entity.Product, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	return resolveProduct(uc.products, name, time.Now().UTC())
}

// UpdatePrice sets the product's price and copies it onto every order row
// carrying that item name.
func (uc *ProductUseCase) UpdatePrice(name string, price decimal.Decimal) (*dto.ProductUpdateResponse, error) {
	if price.IsNegative() {
		return nil, domain.ErrNegativePrice
	}
	ok, err := uc.products.UpdatePriceByNameLower(textkey.Lower(name), price)
	if err != nil {
		return nil, fmt.Errorf("update product price: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.orders.PropagatePrice(name, price); err != nil {
		return nil, fmt.Errorf("propagate price to orders: %w", err)
	}
	return &dto.ProductUpdateResponse{
		Message:     "Product price updated successfully",
		ProductName: name,
		Price:       &price,
	}, nil
}

// UpdateImage sets the product's image URL and copies it onto every order row
// carrying that item name.
func (uc *ProductUseCase) UpdateImage(name, imageURL string) (*dto.ProductUpdateResponse, error) {
	if imageURL == "" {
		return nil, domain.ErrInvalidInput
	}
	ok, err := uc.products.UpdateImageByNameLower(textkey.Lower(name), imageURL)
	if err != nil {
		return nil, fmt.Errorf("update product image: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.orders.PropagateImage(name, imageURL); err != nil {
		return nil, fmt.Errorf("propagate image to orders: %w", err)
	}
	return &dto.ProductUpdateResponse{
		Message:     "Product image updated successfully",
		ProductName: name,
		ImageURL:    imageURL,
	}, nil
}

package dto

import "github.com/shopspring/decimal"

// UpdateProductPriceRequest sets a product's price; propagates to its orders.
type UpdateProductPriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

// UpdateProductImageRequest sets a product's image URL; propagates to its orders.
type UpdateProductImageRequest struct {
	ImageURL string `json:"image_url"`
}

// ProductUpdateResponse confirms a catalog update.
type ProductUpdateResponse struct {
	Message     string           `json:"message"`
	ProductName string           `json:"product_name"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
}

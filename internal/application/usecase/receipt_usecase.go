package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/ports"
	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
)

// ReceiptUseCase renders a customer's billed orders as a printable receipt.
type ReceiptUseCase struct {
	orders   repository.OrderRepository
	renderer ports.ReceiptRenderer
	shopName string
}

// NewReceiptUseCase wires receipt generation.
func NewReceiptUseCase(orders repository.OrderRepository, renderer ports.ReceiptRenderer, shopName string) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, renderer: renderer, shopName: shopName}
}

// CustomerReceipt collects the customer's billing and completed orders within
// the caller's scope and renders them as a PDF. No matching orders is a
// not-found condition.
func (uc *ReceiptUseCase) CustomerReceipt(senderID, customerName string) ([]byte, error) {
	if customerName == "" {
		return nil, domain.ErrInvalidInput
	}

	var matched []*entity.Order
	for _, status := range []domain.Status{domain.StatusBilling, domain.StatusCompleted} {
		orders, err := uc.orders.ListByStatusAndSender(status, senderID)
		if err != nil {
			return nil, fmt.Errorf("list %s orders: %w", status, err)
		}
		for _, o := range orders {
			if o.CustomerName == customerName {
				matched = append(matched, o)
			}
		}
	}
	if len(matched) == 0 {
		return nil, domain.ErrNotFound
	}

	data := &dto.ReceiptData{
		ShopName:     uc.shopName,
		CustomerName: customerName,
		IssuedAt:     time.Now().UTC(),
		Total:        decimal.Zero,
	}
	for _, o := range matched {
		sub := o.Subtotal()
		data.Lines = append(data.Lines, dto.ReceiptLine{
			ItemName: o.ItemName,
			Color:    o.Color,
			Quantity: o.Quantity,
			Price:    o.Price,
			Subtotal: sub,
		})
		data.Total = data.Total.Add(sub)
	}

	pdf, err := uc.renderer.RenderReceipt(data)
	if err != nil {
		return nil, fmt.Errorf("render receipt for %q: %w", customerName, err)
	}
	return pdf, nil
}

package usecase

import (
	"fmt"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
)

// SummaryUseCase derives the pickup-phase dashboard view: per-product totals
// with a quantity breakdown per color.
type SummaryUseCase struct {
	orders repository.OrderRepository
}

// NewSummaryUseCase wires the summary view.
func NewSummaryUseCase(orders repository.OrderRepository) *SummaryUseCase {
	return &SummaryUseCase{orders: orders}
}

// PickupSummaries aggregates the sender's pickup orders by product name.
// Image orders carry synthetic unique names and are reported as a count of 1
// with no color breakdown, by convention.
func (uc *SummaryUseCase) PickupSummaries(senderID string) ([]dto.ProductSummaryResponse, error) {
	orders, err := uc.orders.ListByStatusAndSender(domain.StatusPickup, senderID)
	if err != nil {
		return nil, fmt.Errorf("list pickup orders: %w", err)
	}

	index := map[string]int{}
	summaries := make([]dto.ProductSummaryResponse, 0, len(orders))

	for _, o := range orders {
		if o.IsImageOrder() {
			summaries = append(summaries, dto.ProductSummaryResponse{
				ProductName:    o.ItemName,
				TotalQuantity:  1,
				ColorBreakdown: map[string]int{},
				ImageURL:       o.ImageURL,
			})
			continue
		}

		i, ok := index[o.ItemName]
		if !ok {
			price := o.Price
			summaries = append(summaries, dto.ProductSummaryResponse{
				ProductName:    o.ItemName,
				ColorBreakdown: map[string]int{},
				ImageURL:       o.ImageURL, // first seen wins
				Price:          &price,
			})
			i = len(summaries) - 1
			index[o.ItemName] = i
		}
		summaries[i].TotalQuantity += o.Quantity
		if o.Color != "" {
			summaries[i].ColorBreakdown[o.Color] += o.Quantity
		}
	}

	return summaries, nil
}

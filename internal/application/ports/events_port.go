package ports

import (
	"context"

	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
)

// OrderEventPublisher is the outbound port for order lifecycle notifications.
// Publishing is best-effort: implementations log failures, callers never fail
// a request because of them. A nil publisher means disabled.
type OrderEventPublisher interface {
	OrderCreated(ctx context.Context, o *entity.Order) error
	// OrdersMoved announces a status transition. Subject describes what the
	// move was keyed by ("product:Blue Shirt", "order:<id>", "customer:Anna").
	OrdersMoved(ctx context.Context, subject string, count int, from, to domain.Status) error
}

package ports

import (
	"context"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
)

// OrderExtractor is the outbound port for the text-understanding oracle that
// turns one free-text order message into structured line items.
//
// Implementations must either return a response conforming to
// dto.StructuredOrder or an error; a syntactically valid but non-conforming
// oracle reply is an error, never a partial result. The context carries the
// call timeout.
type OrderExtractor interface {
	ParseOrderMessage(ctx context.Context, text string) (*dto.StructuredOrder, error)
}

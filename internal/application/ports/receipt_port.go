package ports

import "github.com/ngvyshop/chatorder-api/internal/application/dto"

// ReceiptRenderer is the outbound port for turning a customer's billed orders
// into a printable receipt document.
type ReceiptRenderer interface {
	RenderReceipt(data *dto.ReceiptData) ([]byte, error)
}

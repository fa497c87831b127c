package http

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
	"github.com/ngvyshop/chatorder-api/internal/domain"
)

// ReceiptHandler serves customer receipts as PDF downloads.
type ReceiptHandler struct {
	uc *usecase.ReceiptUseCase
}

// NewReceiptHandler builds the handler.
func NewReceiptHandler(uc *usecase.ReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Receipt godoc
// @Summary      PDF receipt of a customer's billed orders (owner only)
// @Tags         receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        name  path  string  true  "Customer name"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{name}/receipt [get]
func (h *ReceiptHandler) Receipt(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_NAME", Message: "customer name is required"})
	}
	scope := GetScope(c)

	pdf, err := h.uc.CustomerReceipt(scope.ActingSenderID, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no billed orders for this customer"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "receipt-"+name+".pdf"))
	return c.Send(pdf)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
	"github.com/ngvyshop/chatorder-api/internal/domain"
)

// OrderHandler serves the lifecycle operations and the per-phase dashboards.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler builds the handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Preparing godoc
// @Summary      Preparing orders grouped by customer
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CustomerGroupResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/orders/preparing [get]
func (h *OrderHandler) Preparing(c *fiber.Ctx) error {
	return h.grouped(c, domain.StatusPreparing)
}

// Billing godoc
// @Summary      Billing orders grouped by customer
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CustomerGroupResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/orders/billing [get]
func (h *OrderHandler) Billing(c *fiber.Ctx) error {
	return h.grouped(c, domain.StatusBilling)
}

// History godoc
// @Summary      Completed orders grouped by customer (owner only)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CustomerGroupResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders/history [get]
func (h *OrderHandler) History(c *fiber.Ctx) error {
	return h.grouped(c, domain.StatusCompleted)
}

func (h *OrderHandler) grouped(c *fiber.Ctx, status domain.Status) error {
	scope := GetScope(c)
	groups, err := h.uc.GroupByCustomer(status, scope.ActingSenderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(groups)
}

// MoveToPreparing godoc
// @Summary      Move a product's pickup orders to preparing (owner only)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoveToPreparingRequest  true  "Product name"
// @Success      200   {object}  dto.BulkMoveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/move-to-preparing [post]
func (h *OrderHandler) MoveToPreparing(c *fiber.Ctx) error {
	var in dto.MoveToPreparingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.ProductName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_name is required"})
	}
	moved, err := h.uc.MoveToPreparing(c.Context(), in.ProductName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.BulkMoveResponse{Message: "Orders moved to preparing", Moved: moved})
}

// MoveToBilling godoc
// @Summary      Move one order from preparing to billing
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/move-to-billing [post]
func (h *OrderHandler) MoveToBilling(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.MoveToBilling(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
		case errors.Is(err, domain.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(dto.StatusResponse{Message: "Order moved to billing"})
}

// MarkAllPaid godoc
// @Summary      Complete all billing orders of a customer (owner only)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MarkAllPaidRequest  true  "Customer name"
// @Success      200   {object}  dto.BulkMoveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/mark-all-paid [post]
func (h *OrderHandler) MarkAllPaid(c *fiber.Ctx) error {
	var in dto.MarkAllPaidRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.CustomerName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_name is required"})
	}
	moved, err := h.uc.MarkAllPaid(c.Context(), in.CustomerName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.BulkMoveResponse{Message: "Orders marked as paid", Moved: moved})
}

// UpdatePrice godoc
// @Summary      Correct a billing order's price (owner only)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.UpdateOrderPriceRequest  true  "New price"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/update-price [put]
func (h *OrderHandler) UpdatePrice(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateOrderPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.uc.UpdatePrice(id, in.Price); err != nil {
		switch {
		case errors.Is(err, domain.ErrNegativePrice):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NEGATIVE_PRICE", Message: "price must not be negative"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no billing order with this id"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(dto.StatusResponse{Message: "Order price updated"})
}

// PreparationNotes godoc
// @Summary      Set an order's preparation notes
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.NotesRequest  true  "Notes"
// @Success      200   {object}  dto.StatusResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/preparation-notes [put]
func (h *OrderHandler) PreparationNotes(c *fiber.Ctx) error {
	return h.notes(c, h.uc.SetPreparationNotes)
}

// BillingNotes godoc
// @Summary      Set an order's billing notes
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.NotesRequest  true  "Notes"
// @Success      200   {object}  dto.StatusResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/billing-notes [put]
func (h *OrderHandler) BillingNotes(c *fiber.Ctx) error {
	return h.notes(c, h.uc.SetBillingNotes)
}

func (h *OrderHandler) notes(c *fiber.Ctx, set func(string, string) error) error {
	id := c.Params("id")
	var in dto.NotesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := set(id, in.Notes); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.StatusResponse{Message: "Notes updated"})
}

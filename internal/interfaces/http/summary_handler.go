package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
	"github.com/ngvyshop/chatorder-api/internal/domain"
)

// SummaryHandler serves the pickup-phase product summaries and the catalog
// updates keyed by product name.
type SummaryHandler struct {
	summaries *usecase.SummaryUseCase
	products  *usecase.ProductUseCase
}

// NewSummaryHandler builds the handler.
func NewSummaryHandler(summaries *usecase.SummaryUseCase, products *usecase.ProductUseCase) *SummaryHandler {
	return &SummaryHandler{summaries: summaries, products: products}
}

// List godoc
// @Summary      Pickup-phase summaries per product
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ProductSummaryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/order-summaries [get]
func (h *SummaryHandler) List(c *fiber.Ctx) error {
	scope := GetScope(c)
	out, err := h.summaries.PickupSummaries(scope.ActingSenderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdatePrice godoc
// @Summary      Set a product's price, propagating to its orders
// @Tags         summaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        product  path  string  true  "Product name"
// @Param        body     body  dto.UpdateProductPriceRequest  true  "New price"
// @Success      200  {object}  dto.ProductUpdateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/order-summaries/{product}/price [put]
func (h *SummaryHandler) UpdatePrice(c *fiber.Ctx) error {
	product, err := productParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_PRODUCT", Message: "product name is required"})
	}
	var in dto.UpdateProductPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.products.UpdatePrice(product, in.Price)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNegativePrice):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NEGATIVE_PRICE", Message: "price must not be negative"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// UpdateImage godoc
// @Summary      Set a product's image URL, propagating to its orders
// @Tags         summaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        product  path  string  true  "Product name"
// @Param        body     body  dto.UpdateProductImageRequest  true  "Image URL"
// @Success      200  {object}  dto.ProductUpdateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/order-summaries/{product}/image [put]
func (h *SummaryHandler) UpdateImage(c *fiber.Ctx) error {
	product, err := productParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_PRODUCT", Message: "product name is required"})
	}
	var in dto.UpdateProductImageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.products.UpdateImage(product, in.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "image_url is required"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// productParam decodes the :product path segment; names may carry spaces.
func productParam(c *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(c.Params("product"))
	if err != nil || name == "" {
		return "", domain.ErrInvalidInput
	}
	return name, nil
}

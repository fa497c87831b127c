package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
	"github.com/ngvyshop/chatorder-api/internal/domain"
)

// UserHandler serves the owner's staff management routes.
type UserHandler struct {
	uc *usecase.AccountUseCase
}

// NewUserHandler builds the handler.
func NewUserHandler(uc *usecase.AccountUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Staff accounts of the calling owner
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StaffResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	scope := GetScope(c)
	out, err := h.uc.ListStaff(scope.PlatformID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Search staff accounts by name
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  true  "Name fragment"
// @Success      200  {array}   dto.StaffResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/users/facebook-search [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	out, err := h.uc.SearchStaff(query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "q is required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddStaff godoc
// @Summary      Attach a staff account to the calling owner
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStaffRequest  true  "Staff platform id"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/add-staff [post]
func (h *UserHandler) AddStaff(c *fiber.Ctx) error {
	scope := GetScope(c)
	var in dto.AddStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.uc.AddStaff(scope.PlatformID, in.PlatformID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "facebook_id is required"})
		case errors.Is(err, domain.ErrAccountNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "account not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(dto.StatusResponse{Message: "Staff added"})
}

// Remove godoc
// @Summary      Remove a staff account
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Staff platform id"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Remove(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.RemoveStaff(id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "account not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.StatusResponse{Message: "Staff removed"})
}

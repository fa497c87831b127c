package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
	"github.com/ngvyshop/chatorder-api/internal/domain"
)

// AuthHandler serves the OAuth login flow (public routes).
type AuthHandler struct {
	uc *usecase.AccountUseCase
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *usecase.AccountUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Identity provider authorization URL
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.LoginURLResponse
// @Router       /api/login [get]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return c.JSON(dto.LoginURLResponse{AuthURL: h.uc.LoginURL()})
}

// Callback godoc
// @Summary      OAuth callback: exchange code, create account, issue session
// @Tags         auth
// @Produce      json
// @Param        code  query  string  true   "OAuth authorization code"
// @Param        role  query  string  false  "Role on first login (owner|staff)"
// @Success      200   {object}  dto.CallbackResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/callback [get]
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	role := c.Query("role")

	out, err := h.uc.HandleCallback(c.Context(), code, role)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "OAUTH_FAILED", Message: err.Error()})
	}
	return c.JSON(out)
}

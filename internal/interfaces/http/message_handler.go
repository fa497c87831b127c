package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
)

// MessageHandler read side of the recorded inbound messages.
type MessageHandler struct {
	uc *usecase.MessageUseCase
}

// NewMessageHandler builds the handler.
func NewMessageHandler(uc *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

// List godoc
// @Summary      Recorded inbound messages, newest first
// @Tags         messages
// @Security     Bearer
// @Produce      json
// @Param        conversation_id  query  string  false  "Conversation filter"
// @Param        limit            query  int     false  "Limit"   default(50)
// @Param        offset           query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MessageListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/messages [get]
func (h *MessageHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit > 200 {
		limit = 200
	}
	out, err := h.uc.List(c.Query("conversation_id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

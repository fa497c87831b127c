package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
)

// WebhookHandler is the platform-facing intake surface: subscription
// verification and inbound event delivery.
type WebhookHandler struct {
	intake      *usecase.IntakeUseCase
	verifyToken string
	appSecret   string
	log         zerolog.Logger
}

// NewWebhookHandler builds the handler. An empty appSecret disables signature
// verification (local development only).
func NewWebhookHandler(intake *usecase.IntakeUseCase, verifyToken, appSecret string, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{intake: intake, verifyToken: verifyToken, appSecret: appSecret, log: log}
}

// Verify godoc
// @Summary      Webhook subscription challenge
// @Tags         webhook
// @Produce      plain
// @Param        hub.mode          query  string  true  "subscribe"
// @Param        hub.verify_token  query  string  true  "Shared verify token"
// @Param        hub.challenge     query  string  true  "Challenge to echo"
// @Success      200  {string}  string
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /webhook [get]
func (h *WebhookHandler) Verify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == h.verifyToken {
		h.log.Info().Msg("webhook subscription verified")
		return c.SendString(challenge)
	}
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "VERIFICATION_FAILED", Message: "invalid verify token"})
}

// Receive godoc
// @Summary      Inbound messaging events
// @Tags         webhook
// @Accept       json
// @Produce      plain
// @Param        X-Hub-Signature-256  header  string  false  "sha256= HMAC of the raw body"
// @Success      200  {string}  string  "EVENT_RECEIVED"
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /webhook [post]
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	body := c.Body()

	if h.appSecret != "" && !h.validSignature(c.Get("X-Hub-Signature-256"), body) {
		h.log.Warn().Msg("webhook signature mismatch")
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "signature verification failed"})
	}

	var payload dto.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed webhook payload"})
	}
	if payload.Object != "page" {
		// Not a page subscription; acknowledge and ignore.
		return c.SendString("EVENT_RECEIVED")
	}

	for _, entry := range payload.Entry {
		for _, ev := range entry.Messaging {
			if ev.Read != nil || ev.Message == nil {
				continue
			}
			if err := h.intake.HandleEvent(c.Context(), ev); err != nil {
				// One bad event must not block the rest of the batch; the
				// platform retries on non-200 anyway.
				h.log.Error().Err(err).Str("sender_id", ev.Sender.ID).Msg("event processing failed")
			}
		}
	}
	return c.SendString("EVENT_RECEIVED")
}

// validSignature checks the sha256= HMAC header against the raw body.
func (h *WebhookHandler) validSignature(header string, body []byte) bool {
	const prefix = "sha256="
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.appSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header[len(prefix):]))
}

package http

import (
	"github.com/gofiber/fiber/v2"
)

const privacyPage = `<!DOCTYPE html>
<html>
<head><title>Privacy Policy</title></head>
<body>
<h1>Privacy Policy</h1>
<p>This service stores messages received through the connected messaging
platform solely to manage shop orders on behalf of the page owner. Message
content is never shared with third parties and can be deleted on request.</p>
<p>Contact the page owner to request removal of your data.</p>
</body>
</html>`

// Health godoc
// @Summary      Liveness probe
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Privacy serves the static privacy policy page required for platform review.
func Privacy(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(privacyPage)
}

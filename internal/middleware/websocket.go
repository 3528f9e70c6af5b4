package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It also checks that the player ID and the named route parameters are present before allowing the upgrade.
func WebSocketUpgrade(required ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// set by EnsurePlayerID
		if c.Locals("playerID") == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		for _, name := range required {
			if c.Params(name) == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": name + " is required",
				})
			}
		}
		return c.Next()
	}
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

// GameExists reports whether a game with the given ID is hosted.
type GameExists func(gameID string) bool

// WebSocketUpgrade admits websocket upgrade requests for hosted games only.
// The game and player IDs are copied to Locals("wsGameID") and
// Locals("wsPlayerID") since the connection handler only sees locals.
func WebSocketUpgrade(exists GameExists) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		// Set by EnsurePlayerID
		playerID, _ := c.Locals("playerID").(string)
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		if exists != nil && !exists(gameID) {
			log.Debugf("refusing websocket for unknown game %s", gameID)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game not found",
			})
		}

		c.Locals("wsGameID", utils.CopyString(gameID))
		c.Locals("wsPlayerID", utils.CopyString(playerID))
		return c.Next()
	}
}

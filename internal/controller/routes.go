package controller

import (
	"github.com/benbeisheim/camelot-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the websocket and REST endpoints on app.
func RegisterRoutes(app *fiber.App, gc *GameController, ec *EngineController, wsc *WebSocketController, origins []string) {
	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(wsc.gameExists), websocket.New(wsc.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Post("/join/:gameId", gc.JoinGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Get("/:gameId/moves/:square", gc.PreviewMoves)

	engineRoutes := api.Group("/engine")
	engineRoutes.Post("/moves", ec.Moves)
	engineRoutes.Post("/step", ec.Step)
	engineRoutes.Post("/win", ec.Win)
	engineRoutes.Post("/replay", ec.Replay)
}

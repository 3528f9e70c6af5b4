package controller

import (
	"github.com/benbeisheim/chessduel/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WSBuffers sizes the websocket read and write buffers.
type WSBuffers struct {
	Read    int
	Write   int
	Origins []string
}

// SetupRoutes mounts the REST API under /api and the websocket endpoints under /ws.
func SetupRoutes(app fiber.Router, gc *GameController, wsc *WebSocketController, buf WSBuffers) {
	wsConfig := websocket.Config{
		ReadBufferSize:  buf.Read,
		WriteBufferSize: buf.Write,
		Origins:         buf.Origins,
	}

	wsRoutes := app.Group("/ws", middleware.EnsurePlayerID())
	wsRoutes.Get("/game/:gameId", middleware.WebSocketUpgrade("gameId"), websocket.New(wsc.HandleConnection, wsConfig))
	wsRoutes.Get("/matchmaking", middleware.WebSocketUpgrade(), websocket.New(wsc.HandleMatchmaking, wsConfig))

	api := app.Group("/api", middleware.EnsurePlayerID())
	gameRoutes := api.Group("/game")
	gameRoutes.Get("/", gc.ListGames)
	gameRoutes.Post("/matchmaking/join", gc.JoinMatchmaking)
	gameRoutes.Delete("/matchmaking", gc.LeaveMatchmaking)
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Post("/join/:gameId", gc.JoinGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Get("/:gameId/moves/:square", gc.LegalMoves)
}

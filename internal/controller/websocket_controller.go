package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/chessduel/internal/service"
	"github.com/benbeisheim/chessduel/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("game %s: register connection for %s: %v", gameID, playerID, err)
		if errors.Is(err, service.ErrGameNotFound) {
			msg, _ := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
			_ = c.WriteJSON(msg)
		}
		_ = c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read from %s: %v", gameID, playerID, err)
			return
		}
		if messageType == websocket.TextMessage {
			wsc.handleFrame(gameID, playerID, message)
		}
	}
}

// handleFrame answers one text frame. JSON envelopes get an error message on failure;
// plain protocol lines always get "ok" or "err".
func (wsc *WebSocketController) handleFrame(gameID, playerID string, frame []byte) {
	frame = bytes.TrimSpace(frame)
	if len(frame) > 0 && frame[0] == '{' {
		var msg ws.Message
		if err := json.Unmarshal(frame, &msg); err != nil {
			wsc.sendError(gameID, playerID, fmt.Errorf("parse message: %w", err))
			return
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debugf("game %s: %s from %s: %v", gameID, msg.Type, playerID, err)
			wsc.sendError(gameID, playerID, err)
		}
		return
	}

	reply := ws.ReplyOK
	cmd, err := ws.ParseCommand(string(frame))
	if err == nil {
		err = wsc.gameService.HandleCommand(gameID, playerID, cmd)
	}
	if err != nil {
		log.Debugf("game %s: %q from %s: %v", gameID, frame, playerID, err)
		reply = ws.ReplyErr
	}
	if err := wsc.gameService.Reply(gameID, playerID, websocket.TextMessage, []byte(reply)); err != nil {
		log.Warnf("game %s: reply to %s: %v", gameID, playerID, err)
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move.Move())
	case ws.MessageTypePromote:
		var p ws.PromotePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		return wsc.gameService.HandlePromote(gameID, playerID, p.Piece)
	case ws.MessageTypeSurrender:
		return wsc.gameService.HandleSurrender(gameID, playerID)
	default:
		return fmt.Errorf("%w: %s", ws.ErrUnknownCommand, msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(gameID, playerID string, cause error) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: cause.Error()})
	if err != nil {
		return
	}
	if err := wsc.gameService.ReplyJSON(gameID, playerID, msg); err != nil {
		log.Warnf("game %s: send error to %s: %v", gameID, playerID, err)
	}
}

// HandleMatchmaking queues the player and pushes a matchFound event once they are paired.
// Closing the socket before that takes the player out of the queue.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)

	ch := make(chan string, 1)
	if matched := wsc.gameService.RegisterMatchmakingChannel(playerID, ch); !matched {
		if err := wsc.gameService.JoinMatchmaking(playerID); err != nil && !errors.Is(err, service.ErrAlreadyQueued) {
			log.Warnf("matchmaking: queue %s: %v", playerID, err)
		}
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			// replaced by a newer matchmaking socket of the same player
			return
		}
		if err := c.WriteJSON(ws.Message{Type: ws.MessageTypeMatchFound, Payload: json.RawMessage(event)}); err != nil {
			log.Warnf("matchmaking: notify %s: %v", playerID, err)
		}
	case <-closed:
		wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)
		wsc.gameService.LeaveMatchmaking(playerID)
		log.Debugf("matchmaking: %s left the queue", playerID)
	}
}

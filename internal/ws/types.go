package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chessduel/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypePromote    MessageType = "promote"
	MessageTypeSurrender  MessageType = "surrender"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeMatchFound MessageType = "matchFound"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MovePayload struct {
	From model.Position `json:"from"`
	To   model.Position `json:"to"`
}

func (p MovePayload) Move() model.Move {
	return model.Move{From: p.From, To: p.To}
}

type PromotePayload struct {
	Piece model.PieceType `json:"piece"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// MatchFoundEvent is pushed to both players when matchmaking seats them.
type MatchFoundEvent struct {
	GameID string       `json:"gameId"`
	Color  model.Player `json:"color"`
}

// NewMessage marshals payload into an envelope of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	if payload == nil {
		return Message{Type: t}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

package game

import (
	"encoding/json"
	"sync"

	"github.com/benbeisheim/chessduel/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a game writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// GameConnections holds the observers of one game, keyed by player ID.
// Writes happen under mu so a connection never has two concurrent writers.
type GameConnections struct {
	connections map[string]Conn
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func (gc *GameConnections) register(playerID string, conn Conn) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if _, exists := gc.connections[playerID]; exists {
		// keep the healthy connection, reject the new one
		_ = conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		_ = conn.Close()
		return ErrAlreadyConnected
	}
	gc.connections[playerID] = conn
	return nil
}

// unregister removes conn unless the player has since been registered on another connection.
func (gc *GameConnections) unregister(playerID string, conn Conn) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if current, exists := gc.connections[playerID]; exists && current == conn {
		delete(gc.connections, playerID)
	}
}

func (gc *GameConnections) count() int {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return len(gc.connections)
}

func (gc *GameConnections) write(playerID string, messageType int, data []byte) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	conn, ok := gc.connections[playerID]
	if !ok {
		return ErrNotInGame
	}
	return conn.WriteMessage(messageType, data)
}

func (gc *GameConnections) writeJSON(playerID string, v interface{}) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	conn, ok := gc.connections[playerID]
	if !ok {
		return ErrNotInGame
	}
	return conn.WriteJSON(v)
}

func stateMessage(state GameState) ws.Message {
	payload, err := json.Marshal(state)
	if err != nil {
		// GameState holds only plain data
		panic(err)
	}
	return ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}
}

// broadcast sends state to every observer and drops the ones that fail.
func (gc *GameConnections) broadcast(gameID string, state GameState) {
	msg := stateMessage(state)

	gc.mu.Lock()
	defer gc.mu.Unlock()
	for playerID, conn := range gc.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: send state to %s: %v", gameID, playerID, err)
			delete(gc.connections, playerID)
		}
	}
}

package service

import (
	"fmt"

	"github.com/benbeisheim/chessduel/internal/game"
	"github.com/benbeisheim/chessduel/internal/model"
	"github.com/benbeisheim/chessduel/internal/ws"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateOptions are per-request overrides of the configured game defaults.
type CreateOptions struct {
	Casual *bool  `json:"casual"`
	FEN    string `json:"fen"`
}

func (gs *GameService) CreateGame(req CreateOptions) (string, error) {
	gameID := uuid.New().String()

	opts := gs.gameManager.Options()
	if req.Casual != nil {
		opts.Casual = *req.Casual
	}
	if req.FEN != "" {
		opts.FEN = req.FEN
	}
	if _, err := gs.gameManager.CreateGame(gameID, opts); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Player, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (game.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// LegalMoves resolves square ("e2") and lists where playerID may move from it.
func (gs *GameService) LegalMoves(gameID, playerID, square string) ([]model.Position, error) {
	pos, ok := model.ParsePosition(square)
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidPosition, square)
	}
	g, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return g.LegalMoves(playerID, pos)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.Move) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) HandlePromote(gameID string, playerID string, kind model.PieceType) error {
	return gs.gameManager.Promote(gameID, playerID, kind)
}

func (gs *GameService) HandleSurrender(gameID string, playerID string) error {
	return gs.gameManager.Surrender(gameID, playerID)
}

// HandleCommand dispatches one parsed line of the text protocol.
func (gs *GameService) HandleCommand(gameID string, playerID string, cmd ws.Command) error {
	switch cmd.Type {
	case ws.MessageTypeMove:
		return gs.HandleMove(gameID, playerID, cmd.Move)
	case ws.MessageTypePromote:
		return gs.HandlePromote(gameID, playerID, cmd.Promote)
	case ws.MessageTypeSurrender:
		return gs.HandleSurrender(gameID, playerID)
	}
	return fmt.Errorf("%w: %s", ws.ErrUnknownCommand, cmd.Type)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn game.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn game.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// Reply writes a raw frame to playerID's connection in gameID.
func (gs *GameService) Reply(gameID string, playerID string, messageType int, data []byte) error {
	g, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return g.Send(playerID, messageType, data)
}

// ReplyJSON writes v as JSON to playerID's connection in gameID.
func (gs *GameService) ReplyJSON(gameID string, playerID string, v interface{}) error {
	g, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return g.SendJSON(playerID, v)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) bool {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}

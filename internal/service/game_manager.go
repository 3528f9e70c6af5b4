// service/game_manager.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessduel/internal/game"
	"github.com/benbeisheim/chessduel/internal/model"
	"github.com/benbeisheim/chessduel/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Config holds the defaults applied to every new game and the pairing cadence.
type Config struct {
	TimeControl         time.Duration
	MatchmakingInterval time.Duration
	StartFEN            string
	Casual              bool
}

type GameManager struct {
	games            map[string]*game.Game
	queue            *Queue
	matchingChannels map[string]chan string
	// match events that could not be delivered yet, handed out on the next channel registration
	pendingMatches map[string]string
	cfg            Config
	mu             sync.RWMutex
}

func NewGameManager(cfg Config) *GameManager {
	if cfg.MatchmakingInterval <= 0 {
		cfg.MatchmakingInterval = time.Second
	}
	return &GameManager{
		games:            make(map[string]*game.Game),
		queue:            NewQueue(),
		matchingChannels: make(map[string]chan string),
		pendingMatches:   make(map[string]string),
		cfg:              cfg,
	}
}

// Options returns the game options configured for new games.
func (gm *GameManager) Options() game.Options {
	return game.Options{
		TimeControl: gm.cfg.TimeControl,
		Casual:      gm.cfg.Casual,
		FEN:         gm.cfg.StartFEN,
	}
}

// Run pairs queued players on every tick until ctx is cancelled.
func (gm *GameManager) Run(ctx context.Context) {
	ticker := time.NewTicker(gm.cfg.MatchmakingInterval)
	defer ticker.Stop()

	log.Infof("matchmaking started, interval %s", gm.cfg.MatchmakingInterval)
	for {
		select {
		case <-ctx.Done():
			log.Info("matchmaking stopped")
			return
		case <-ticker.C:
			if n := gm.processMatchmaking(); n > 0 {
				log.Infof("matchmaking created %d game(s)", n)
			}
		}
	}
}

// processMatchmaking seats every available pair in a fresh game and notifies both players.
// It returns the number of games created.
func (gm *GameManager) processMatchmaking() int {
	created := 0
	for {
		p1, p2, ok := gm.queue.NextPair()
		if !ok {
			return created
		}

		gameID := uuid.New().String()
		g, err := game.NewGame(gameID, gm.Options())
		if err != nil {
			log.Errorf("matchmaking: create game: %v", err)
			return created
		}
		p1Color, err := g.AddPlayer(p1.PlayerID)
		if err != nil {
			log.Errorf("matchmaking: seat %s: %v", p1.PlayerID, err)
			continue
		}
		p2Color, err := g.AddPlayer(p2.PlayerID)
		if err != nil {
			log.Errorf("matchmaking: seat %s: %v", p2.PlayerID, err)
			continue
		}

		gm.mu.Lock()
		gm.games[gameID] = g
		gm.notifyMatch(p1.PlayerID, ws.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatch(p2.PlayerID, ws.MatchFoundEvent{GameID: gameID, Color: p2Color})
		gm.mu.Unlock()
		created++
	}
}

// notifyMatch sends event on the player's channel and closes it, or parks the event
// until the player registers a channel. gm.mu must be held.
func (gm *GameManager) notifyMatch(playerID string, event ws.MatchFoundEvent) {
	msg := mustJSON(event)
	if ch, ok := gm.matchingChannels[playerID]; ok {
		select {
		case ch <- msg:
			log.Debugf("sent match found event to player %s", playerID)
			delete(gm.matchingChannels, playerID)
			close(ch)
			return
		default:
			log.Warnf("match found channel of player %s is full", playerID)
		}
	}
	gm.pendingMatches[playerID] = msg
}

// Helper function for JSON marshaling
func mustJSON(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

// RegisterMatchmakingChannel makes ch the player's match notification channel.
// A match that was found while the player had no channel is delivered at once and
// reported as true; the player must not be queued again then.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	if msg, ok := gm.pendingMatches[playerID]; ok {
		select {
		case ch <- msg:
			delete(gm.pendingMatches, playerID)
			close(ch)
			return true
		default:
		}
	}
	gm.matchingChannels[playerID] = ch
	return false
}

// UnregisterMatchmakingChannel forgets the player's channel without closing it;
// the creator of the channel owns it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func (gm *GameManager) CreateGame(gameID string, opts game.Options) (*game.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}
	g, err := game.NewGame(gameID, opts)
	if err != nil {
		return nil, err
	}
	gm.games[gameID] = g
	log.Infow("game created", "game", gameID, "casual", opts.Casual)
	return g, nil
}

func (gm *GameManager) GetGame(gameID string) (*game.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	g, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return g, nil
}

// GameIDs lists the known games in lexical order.
func (gm *GameManager) GameIDs() []string {
	gm.mu.RLock()
	ids := maps.Keys(gm.games)
	gm.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Player, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return model.PlayerNone, err
	}
	return g.AddPlayer(playerID)
}

// JoinMatchmaking queues playerID. A player whose match has not been picked up yet is refused.
func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.RLock()
	_, matched := gm.pendingMatches[playerID]
	gm.mu.RUnlock()
	if matched {
		return fmt.Errorf("join matchmaking: %w", ErrAlreadyMatched)
	}
	if err := gm.queue.AddPlayer(playerID); err != nil {
		return fmt.Errorf("join matchmaking: %w", err)
	}
	log.Debugf("player %s queued, %d waiting", playerID, gm.queue.Size())
	return nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.Remove(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (game.GameState, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return game.GameState{}, err
	}
	return g.State(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.Move) error {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return g.MakeMove(playerID, move)
}

func (gm *GameManager) Promote(gameID string, playerID string, kind model.PieceType) error {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return g.Promote(playerID, kind)
}

func (gm *GameManager) Surrender(gameID string, playerID string) error {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return g.Surrender(playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn game.Conn) error {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return g.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn game.Conn) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	g.UnregisterConnection(playerID, conn)
}

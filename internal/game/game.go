package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/benbeisheim/chessduel/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/exp/slices"
)

const DefaultTimeControl = 10 * time.Minute

type ResultReason string

const (
	ResultCheckmate ResultReason = "checkmate"
	ResultStalemate ResultReason = "stalemate"
	ResultSurrender ResultReason = "surrender"
	ResultTimeout   ResultReason = "timeout"
)

// Result is how a game ended. Winner is PlayerNone for a stalemate.
type Result struct {
	Reason ResultReason `json:"reason"`
	Winner model.Player `json:"winner"`
}

// Sounds hinted to clients for the last action.
const (
	SoundMove    = "move"
	SoundCapture = "capture"
	SoundCastle  = "castle"
	SoundPromote = "promote"
	SoundCheck   = "check"
)

// Ply is one half-move in the game history.
type Ply struct {
	Player    model.Player    `json:"player"`
	Piece     model.Piece     `json:"piece"`
	Move      model.Move      `json:"move"`
	Captured  *model.Piece    `json:"capturedPiece"`
	RookMove  *model.Move     `json:"castleRookMove"`
	Promotion model.PieceType `json:"promotion"`
}

type ClientPlayer struct {
	ID           string       `json:"name"`
	Color        model.Player `json:"color"`
	TimeLeft     int          `json:"timeLeft"` // deciseconds
	ClockRunning bool         `json:"clockRunning"`
}

// GameState is what clients see of a game.
type GameState struct {
	ID             string                         `json:"id"`
	Sound          string                         `json:"sound"`
	Board          model.BoardSnapshot            `json:"boardState"`
	ToMove         model.Player                   `json:"toMove"`
	MoveHistory    []Ply                          `json:"moveHistory"`
	CapturedPieces map[model.Player][]model.Piece `json:"capturedPieces"`
	IsCheck        bool                           `json:"isCheck"`
	Resolve        *Result                        `json:"resolve"`
	Players        map[model.Player]ClientPlayer  `json:"players"`
	Casual         bool                           `json:"casual"`
}

type Options struct {
	TimeControl time.Duration
	// Casual games start from a shuffled board.
	Casual bool
	// FEN overrides the initial placement when set.
	FEN string
	// Rand drives the casual shuffle. Nil uses a time-seeded source.
	Rand *rand.Rand
}

// Game focuses on a single game's state and its observers.
// Every call into the board happens under mu.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       model.Board
	casual      bool
	seats       map[model.Player]string
	clocks      map[model.Player]*Clock
	history     []Ply
	captured    map[model.Player][]model.Piece
	sound       string
	result      *Result
	connections *GameConnections // Connections just for this game
}

func NewGame(id string, opts Options) (*Game, error) {
	board := model.NewBoard()
	if opts.FEN != "" {
		var err error
		if board, err = model.FromFEN(opts.FEN); err != nil {
			return nil, fmt.Errorf("game %s: %w", id, err)
		}
	}
	if opts.Casual {
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		board.Shuffle(rng)
	}
	tc := opts.TimeControl
	if tc <= 0 {
		tc = DefaultTimeControl
	}

	return &Game{
		ID:     id,
		board:  board,
		casual: opts.Casual,
		seats:  make(map[model.Player]string),
		clocks: map[model.Player]*Clock{
			model.PlayerFirst:  NewClock(tc),
			model.PlayerSecond: NewClock(tc),
		},
		captured: map[model.Player][]model.Piece{
			model.PlayerFirst:  {},
			model.PlayerSecond: {},
		},
		connections: NewGameConnections(),
	}, nil
}

// AddPlayer seats playerID on the first free side. A player already seated gets their side back.
func (g *Game) AddPlayer(playerID string) (model.Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if side := g.sideOf(playerID); side != model.PlayerNone {
		return side, nil
	}
	if g.isFull() {
		return model.PlayerNone, ErrGameFull
	}
	for _, side := range []model.Player{model.PlayerFirst, model.PlayerSecond} {
		if g.seats[side] == "" {
			g.seats[side] = playerID
			log.Infow("player seated", "game", g.ID, "player", playerID, "color", side)
			return side, nil
		}
	}
	return model.PlayerNone, ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.sideOf(playerID) != model.PlayerNone
}

func (g *Game) sideOf(playerID string) model.Player {
	if playerID == "" {
		return model.PlayerNone
	}
	for side, id := range g.seats {
		if id == playerID {
			return side
		}
	}
	return model.PlayerNone
}

func (g *Game) isFull() bool {
	return g.seats[model.PlayerFirst] != "" && g.seats[model.PlayerSecond] != ""
}

func (g *Game) Result() (Result, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == nil {
		return Result{}, false
	}
	return *g.result, true
}

// MakeMove plays move for playerID, who must hold the side to move.
func (g *Game) MakeMove(playerID string, move model.Move) error {
	return g.act(playerID, true, func(side model.Player) error {
		return g.applyMove(side, move)
	})
}

// Promote completes a pending promotion of playerID's pawn.
func (g *Game) Promote(playerID string, kind model.PieceType) error {
	return g.act(playerID, true, func(side model.Player) error {
		if err := g.board.Promote(kind); err != nil {
			return err
		}
		if n := len(g.history); n > 0 {
			g.history[n-1].Promotion = kind
		}
		g.sound = SoundPromote
		g.endTurn(side)
		return nil
	})
}

// Surrender ends the game in the opponent's favour. It does not need the turn.
func (g *Game) Surrender(playerID string) error {
	return g.act(playerID, false, func(side model.Player) error {
		g.finish(Result{Reason: ResultSurrender, Winner: side.Opponent()})
		return nil
	})
}

// act runs fn for playerID's side under the game lock and broadcasts the new state if anything changed.
// The broadcast happens before the lock is released so observers see states in the order they were made.
func (g *Game) act(playerID string, needTurn bool, fn func(side model.Player) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	side, err := g.authorize(playerID, needTurn)
	if err == nil {
		err = fn(side)
	}
	if err == nil || errors.Is(err, ErrTimeout) {
		g.connections.broadcast(g.ID, g.stateLocked())
	}
	return err
}

func (g *Game) authorize(playerID string, needTurn bool) (model.Player, error) {
	if g.result != nil {
		return model.PlayerNone, ErrGameOver
	}
	side := g.sideOf(playerID)
	if side == model.PlayerNone {
		return model.PlayerNone, ErrNotInGame
	}
	if !needTurn {
		return side, nil
	}
	if side != g.board.Turn() {
		return side, model.ErrNotYourTurn
	}
	if g.clocks[side].Expired() {
		g.finish(Result{Reason: ResultTimeout, Winner: side.Opponent()})
		return side, ErrTimeout
	}
	return side, nil
}

func (g *Game) applyMove(side model.Player, move model.Move) error {
	if !move.From.IsValid() || !move.To.IsValid() {
		return fmt.Errorf("%w: %s", model.ErrInvalidPosition, move)
	}
	piece := g.board.At(move.From)
	target := g.board.At(move.To)
	if err := g.board.ApplyMove(move); err != nil {
		return err
	}

	ply := Ply{Player: side, Piece: piece, Move: move}
	g.sound = SoundMove
	if !target.IsEmpty() {
		ply.Captured = &target
		g.captured[side] = append(g.captured[side], target)
		g.sound = SoundCapture
	}
	if move.IsCastle(piece) {
		rm := model.RookMove(move)
		ply.RookMove = &rm
		g.sound = SoundCastle
	}
	g.history = append(g.history, ply)

	if g.board.Phase() == model.PhaseAwaitingPromotion {
		return nil
	}
	g.endTurn(side)
	return nil
}

// endTurn hands the clock to the opponent and records checkmate or stalemate.
func (g *Game) endTurn(mover model.Player) {
	g.clocks[mover].Stop()
	status := g.board.Status()
	if status.Check {
		g.sound = SoundCheck
	}
	switch {
	case status.Checkmate:
		g.finish(Result{Reason: ResultCheckmate, Winner: mover})
	case status.Stalemate:
		g.finish(Result{Reason: ResultStalemate, Winner: model.PlayerNone})
	default:
		g.clocks[mover.Opponent()].Start()
	}
}

func (g *Game) finish(r Result) {
	g.result = &r
	for _, c := range g.clocks {
		c.Stop()
	}
	log.Infow("game finished", "game", g.ID, "reason", r.Reason, "winner", r.Winner)
}

// LegalMoves lists the destinations playerID may move the piece on square to right now.
// The list is empty when it is not their turn, the piece is not theirs or the game is over.
func (g *Game) LegalMoves(playerID string, square model.Position) ([]model.Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !square.IsValid() {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidPosition, square)
	}
	side := g.sideOf(playerID)
	if side == model.PlayerNone {
		return nil, ErrNotInGame
	}
	dests := []model.Position{}
	if g.result != nil || side != g.board.Turn() || g.board.At(square).Player != side {
		return dests, nil
	}
	for _, m := range g.board.LegalMoves(square) {
		dests = append(dests, m.To)
	}
	return dests, nil
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.stateLocked()
}

func (g *Game) stateLocked() GameState {
	snap := g.board.Snapshot()
	state := GameState{
		ID:             g.ID,
		Sound:          g.sound,
		Board:          snap,
		ToMove:         snap.Turn,
		MoveHistory:    slices.Clone(g.history),
		CapturedPieces: make(map[model.Player][]model.Piece, len(g.captured)),
		IsCheck:        snap.Status.Check,
		Players:        make(map[model.Player]ClientPlayer, 2),
		Casual:         g.casual,
	}
	if state.MoveHistory == nil {
		state.MoveHistory = []Ply{}
	}
	for side, pieces := range g.captured {
		state.CapturedPieces[side] = slices.Clone(pieces)
	}
	for _, side := range []model.Player{model.PlayerFirst, model.PlayerSecond} {
		state.Players[side] = ClientPlayer{
			ID:           g.seats[side],
			Color:        side,
			TimeLeft:     deciseconds(g.clocks[side].TimeLeft()),
			ClockRunning: g.clocks[side].IsRunning(),
		}
	}
	if g.result != nil {
		r := *g.result
		state.Resolve = &r
	}
	return state
}

// RegisterConnection attaches an observer. Seated players and spectators are both accepted;
// the new observer immediately receives the current state.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.connections.register(playerID, conn); err != nil {
		return err
	}
	log.Debugf("game %s: registered connection for %s", g.ID, playerID)

	if err := g.connections.writeJSON(playerID, stateMessage(g.stateLocked())); err != nil {
		log.Warnf("game %s: initial state to %s: %v", g.ID, playerID, err)
	}
	return nil
}

func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.unregister(playerID, conn)
	log.Debugf("game %s: unregistered connection for %s, %d observers left", g.ID, playerID, g.connections.count())
}

// Send writes a raw frame to playerID's connection.
func (g *Game) Send(playerID string, messageType int, data []byte) error {
	return g.connections.write(playerID, messageType, data)
}

// SendJSON writes v as JSON to playerID's connection.
func (g *Game) SendJSON(playerID string, v interface{}) error {
	return g.connections.writeJSON(playerID, v)
}


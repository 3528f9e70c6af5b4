package model

import "strings"

type PieceType string

const (
	Empty  PieceType = ""
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Letter is the single-letter symbol of the piece type, empty for Empty.
func (p PieceType) Letter() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

// ParsePieceType accepts a piece letter in either case or the lowercase piece name.
func ParsePieceType(s string) (PieceType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "k", "king":
		return King, true
	case "q", "queen":
		return Queen, true
	case "r", "rook":
		return Rook, true
	case "b", "bishop":
		return Bishop, true
	case "n", "knight":
		return Knight, true
	case "p", "pawn":
		return Pawn, true
	}
	return Empty, false
}

// Piece is the content of a square. An empty square has Type Empty and Player PlayerNone.
// HasMoved only matters for kings and rooks.
type Piece struct {
	Type     PieceType `json:"type"`
	Player   Player    `json:"player"`
	HasMoved bool      `json:"hasMoved"`
}

var EmptyPiece = Piece{}

// NewPiece returns an unmoved piece. If either kind or owner is empty the result is EmptyPiece,
// so an owned empty square or an ownerless piece can never be built.
func NewPiece(kind PieceType, owner Player) Piece {
	if kind == Empty || owner == PlayerNone {
		return EmptyPiece
	}
	return Piece{Type: kind, Player: owner}
}

func (p Piece) IsEmpty() bool {
	return p.Type == Empty
}

// Phase is the state of the turn machine.
type Phase string

const (
	PhaseNormal            Phase = "normal"
	PhaseAwaitingPromotion Phase = "awaitingPromotion"
)

// Board is the authoritative game state. It is a plain value owned by the game session;
// copying it copies the whole grid. Methods assume exclusive access.
type Board struct {
	grid      [8][8]Piece // [rank][file]
	turn      Player
	promotion *Position
	lastMove  *Move

	selected      *Position
	selectedMoves []Move
}

var backRank = [8]PieceType{Rook, Knight, Bishop, King, Queen, Bishop, Knight, Rook}

// NewBoard returns the initial placement with the first player to move.
func NewBoard() Board {
	board := NewEmptyBoard(PlayerFirst)
	for x := 0; x < 8; x++ {
		board.grid[0][x] = NewPiece(backRank[x], PlayerFirst)
		board.grid[1][x] = NewPiece(Pawn, PlayerFirst)
		board.grid[6][x] = NewPiece(Pawn, PlayerSecond)
		board.grid[7][x] = NewPiece(backRank[x], PlayerSecond)
	}
	return board
}

// NewEmptyBoard returns a board with no pieces and the given side to move.
// Positions are then set up with Place before play starts.
func NewEmptyBoard(turn Player) Board {
	if turn == PlayerNone {
		turn = PlayerFirst
	}
	return Board{turn: turn}
}

// Place puts a piece on a square while setting up a position. It is not a move:
// no legality is checked and the turn does not change.
func (b *Board) Place(pos Position, piece Piece) error {
	if !pos.IsValid() {
		return ErrInvalidPosition
	}
	b.set(pos, NewPiece(piece.Type, piece.Player))
	b.grid[pos.Y][pos.X].HasMoved = piece.HasMoved && !piece.IsEmpty()
	return nil
}

// At returns the piece on a square. pos must be valid.
func (b *Board) At(pos Position) Piece {
	return b.grid[pos.Y][pos.X]
}

func (b *Board) set(pos Position, piece Piece) {
	b.grid[pos.Y][pos.X] = piece
}

func (b *Board) Turn() Player {
	return b.turn
}

func (b *Board) Phase() Phase {
	if b.promotion != nil {
		return PhaseAwaitingPromotion
	}
	return PhaseNormal
}

// PendingPromotion reports the square of the pawn waiting to be promoted.
func (b *Board) PendingPromotion() (Position, bool) {
	if b.promotion == nil {
		return Position{}, false
	}
	return *b.promotion, true
}

func (b *Board) LastMove() (Move, bool) {
	if b.lastMove == nil {
		return Move{}, false
	}
	return *b.lastMove, true
}

// CanEnter is the admission rule shared by every piece: dest must be on the board and either
// empty or, when capture is allowed, held by a different owner.
func (b *Board) CanEnter(piece Piece, dest Position, capture bool) bool {
	if !dest.IsValid() {
		return false
	}
	other := b.At(dest)
	return other.IsEmpty() || (capture && other.Player != piece.Player)
}

// Select records a square of the side to move together with its legal moves, for highlighting.
// It reports false and clears the selection if the square cannot be selected.
func (b *Board) Select(pos Position) bool {
	b.ClearSelection()
	if !pos.IsValid() || b.promotion != nil || b.At(pos).Player != b.turn {
		return false
	}
	b.selected = &pos
	b.selectedMoves = b.LegalMoves(pos)
	return true
}

func (b *Board) Selection() (Position, []Move, bool) {
	if b.selected == nil {
		return Position{}, nil, false
	}
	return *b.selected, b.selectedMoves, true
}

func (b *Board) ClearSelection() {
	b.selected = nil
	b.selectedMoves = nil
}

// speculate returns an independent copy of the grid with m performed on it.
// Selection, last move and promotion state are not carried over.
func (b *Board) speculate(m Move) Board {
	c := Board{grid: b.grid, turn: b.turn}
	c.perform(m)
	return c
}

package model

import "fmt"

// Move is an origin/destination pair. From is always on the board; To is only checked
// when the move is applied.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func NewMove(from, to Position) (Move, bool) {
	if !from.IsValid() {
		return Move{}, false
	}
	return Move{From: from, To: to}, true
}

// ParseMove decodes the five-character form "e2 e4".
func ParseMove(text string) (Move, bool) {
	if len(text) != 5 || text[2] != ' ' {
		return Move{}, false
	}
	from, ok := ParsePosition(text[0:2])
	if !ok {
		return Move{}, false
	}
	to, ok := ParsePosition(text[3:5])
	if !ok {
		return Move{}, false
	}
	return Move{From: from, To: to}, true
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s", m.From, m.To)
}

// IsCastle reports whether m, made by the piece on its origin, is a castling king move.
func (m Move) IsCastle(piece Piece) bool {
	return piece.Type == King && m.From.Y == m.To.Y && abs(m.To.X-m.From.X) == 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

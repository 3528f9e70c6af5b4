package model

import "golang.org/x/exp/slices"

// BoardSnapshot is a read-only copy of the board for renderers and the transport layer.
type BoardSnapshot struct {
	Squares    [8][8]Piece `json:"squares"` // [rank][file]
	Turn       Player      `json:"turn"`
	Phase      Phase       `json:"phase"`
	LastMove   *Move       `json:"lastMove"`
	Promotion  *Position   `json:"promotion"`
	Selected   *Position   `json:"selected"`
	Candidates []Position  `json:"candidates"`
	Status     Status      `json:"status"`
}

func (b *Board) Snapshot() BoardSnapshot {
	s := BoardSnapshot{
		Squares:    b.grid,
		Turn:       b.turn,
		Phase:      b.Phase(),
		Candidates: []Position{},
		Status:     b.Status(),
	}
	if m, ok := b.LastMove(); ok {
		s.LastMove = &m
	}
	if p, ok := b.PendingPromotion(); ok {
		s.Promotion = &p
	}
	if p, moves, ok := b.Selection(); ok {
		s.Selected = &p
		for _, m := range moves {
			s.Candidates = append(s.Candidates, m.To)
		}
	}
	return s
}

// At returns the piece on pos in the snapshot. pos must be valid.
func (s BoardSnapshot) At(pos Position) Piece {
	return s.Squares[pos.Y][pos.X]
}

// IsCandidate reports whether pos is a destination of the selected piece.
func (s BoardSnapshot) IsCandidate(pos Position) bool {
	return slices.Contains(s.Candidates, pos)
}

package model

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// ApplyMove plays m for the side to move. On failure nothing changes.
// A pawn reaching the far rank leaves the board awaiting Promote with the turn unchanged.
func (b *Board) ApplyMove(m Move) error {
	if b.promotion != nil {
		return ErrPromotionPending
	}
	if !m.From.IsValid() || !m.To.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, m)
	}
	piece := b.At(m.From)
	if piece.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrEmptySquare, m.From)
	}
	if piece.Player != b.turn {
		return ErrNotYourTurn
	}
	if !slices.Contains(b.LegalMoves(m.From), m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	b.perform(m)
	b.lastMove = &m
	b.ClearSelection()

	moved := b.At(m.To)
	if moved.Type == Pawn && m.To.Y == moved.Player.lastRank() {
		to := m.To
		b.promotion = &to
		return nil
	}
	b.turn = b.turn.Opponent()
	return nil
}

// ApplyText parses a move such as "e2 e4" and applies it.
func (b *Board) ApplyText(text string) error {
	m, ok := ParseMove(text)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidMove, text)
	}
	return b.ApplyMove(m)
}

// Promote replaces the pending pawn with kind and passes the turn.
func (b *Board) Promote(kind PieceType) error {
	if b.promotion == nil {
		return ErrNoPromotion
	}
	switch kind {
	case Bishop, Knight, Queen, Rook:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPromotion, kind)
	}
	pos := *b.promotion
	pawn := b.At(pos)
	b.set(pos, Piece{Type: kind, Player: pawn.Player, HasMoved: true})
	b.promotion = nil
	b.turn = b.turn.Opponent()
	return nil
}

// perform relocates the piece without any validation, including the rook of a castling move.
func (b *Board) perform(m Move) {
	piece := b.At(m.From)
	piece.HasMoved = true
	b.set(m.To, piece)
	b.set(m.From, EmptyPiece)
	if m.IsCastle(piece) {
		b.castleRook(m)
	}
}

package model

import "golang.org/x/exp/slices"

// PseudoMoves returns the geometrically valid moves of the piece on pos, ignoring
// whether they expose its own king. Castling is never included. This is what a side threatens.
func (b *Board) PseudoMoves(pos Position) []Move {
	return b.generateMoves(pos, false)
}

// LegalMoves returns the moves of the piece on pos that do not leave its own king
// in check, plus any available castling moves.
func (b *Board) LegalMoves(pos Position) []Move {
	return b.generateMoves(pos, true)
}

func (b *Board) generateMoves(from Position, restricted bool) []Move {
	if !from.IsValid() {
		return nil
	}
	piece := b.At(from)
	if piece.IsEmpty() || piece.Player == PlayerNone {
		return nil
	}

	moves := []Move{}
	// tryAdd reports whether a ray may continue past to.
	tryAdd := func(to Position, capture bool) bool {
		if !b.CanEnter(piece, to, capture) {
			return false
		}
		moves = append(moves, Move{From: from, To: to})
		return b.At(to).IsEmpty()
	}

	switch piece.Type {
	case Pawn:
		dir := piece.Player.forward()
		if tryAdd(Position{X: from.X, Y: from.Y + dir}, false) && from.Y == piece.Player.homeRank()+dir {
			tryAdd(Position{X: from.X, Y: from.Y + 2*dir}, false)
		}
		for _, dx := range []int{1, -1} {
			to := Position{X: from.X + dx, Y: from.Y + dir}
			if to.IsValid() && b.At(to).Player == piece.Player.Opponent() {
				tryAdd(to, true)
			}
		}
	case Bishop:
		sweep(from.Corner, tryAdd)
	case Rook:
		sweep(from.Side, tryAdd)
	case Queen:
		sweep(from.Side, tryAdd)
		sweep(from.Corner, tryAdd)
	case King:
		for dir := 0; dir < 4; dir++ {
			tryAdd(from.Side(dir, 1), true)
			tryAdd(from.Corner(dir, 1), true)
		}
		if restricted && !b.IsInCheck(piece.Player) {
			for _, side := range []CastleSide{Queenside, Kingside} {
				if m, ok := b.CastlingMove(from, side); ok {
					moves = append(moves, m)
				}
			}
		}
	case Knight:
		for dir := 0; dir < 4; dir++ {
			tryAdd(from.Side(dir, 2).Side((dir+1)%4, 1), true)
			tryAdd(from.Side(dir, 2).Side((dir+3)%4, 1), true)
		}
	}

	if restricted {
		moves = slices.DeleteFunc(moves, func(m Move) bool {
			next := b.speculate(m)
			return next.IsInCheck(piece.Player)
		})
	}
	return moves
}

// sweep extends each of the four rays produced by step until tryAdd stops it.
func sweep(step func(dir, dist int) Position, tryAdd func(Position, bool) bool) {
	for dir := 0; dir < 4; dir++ {
		for dist := 1; dist < 8; dist++ {
			if !tryAdd(step(dir, dist), true) {
				break
			}
		}
	}
}

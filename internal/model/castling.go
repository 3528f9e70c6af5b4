package model

// CastleSide names the corner rook a king castles with.
type CastleSide int

const (
	Queenside CastleSide = iota // rook on file a
	Kingside                    // rook on file h
)

// CastlingMove returns the king move for castling toward side, if it is available:
// king and rook unmoved, same owner, nothing between them, and none of the king's square
// or the two squares it crosses threatened by the opponent.
func (b *Board) CastlingMove(king Position, side CastleSide) (Move, bool) {
	if !king.IsValid() {
		return Move{}, false
	}
	k := b.At(king)
	if k.Type != King || k.HasMoved {
		return Move{}, false
	}

	rookX, sign := 0, -1
	if side == Kingside {
		rookX, sign = 7, 1
	}
	rook := b.At(Position{X: rookX, Y: king.Y})
	if rook.Type != Rook || rook.Player != k.Player || rook.HasMoved {
		return Move{}, false
	}
	// the king travels two squares and the rook lands just past it, at most on its own corner
	if abs(rookX-king.X) < 3 {
		return Move{}, false
	}
	for x := min(king.X, rookX) + 1; x < max(king.X, rookX); x++ {
		if !b.At(Position{X: x, Y: king.Y}).IsEmpty() {
			return Move{}, false
		}
	}
	for i := 0; i <= 2; i++ {
		if b.IsSquareThreatened(Position{X: king.X + i*sign, Y: king.Y}, k.Player) {
			return Move{}, false
		}
	}
	return Move{From: king, To: Position{X: king.X + 2*sign, Y: king.Y}}, true
}

// RookMove returns the rook relocation that accompanies the castling king move m:
// the rook stops on the square beyond the king's destination, on the side it came from.
// A rook three files away stays on its corner.
func RookMove(m Move) Move {
	rookX, sign := 0, -1
	if m.To.X > m.From.X {
		rookX, sign = 7, 1
	}
	return Move{
		From: Position{X: rookX, Y: m.To.Y},
		To:   Position{X: m.To.X + sign, Y: m.To.Y},
	}
}

// castleRook moves the corner rook next to the king after a castling king move m.
func (b *Board) castleRook(m Move) {
	rm := RookMove(m)
	rook := b.At(rm.From)
	rook.HasMoved = true
	b.set(rm.From, EmptyPiece)
	b.set(rm.To, rook)
}

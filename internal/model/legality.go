package model

// IsSquareThreatened reports whether any piece not owned by defender has a pseudo-legal
// move landing on pos.
func (b *Board) IsSquareThreatened(pos Position, defender Player) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			from := Position{X: x, Y: y}
			piece := b.At(from)
			if piece.IsEmpty() || piece.Player == defender {
				continue
			}
			for _, m := range b.PseudoMoves(from) {
				if m.To == pos {
					return true
				}
			}
		}
	}
	return false
}

// IsInCheck reports whether a king of side is threatened. A side without a king is never
// in check; a side with several kings is in check when any of them is threatened.
func (b *Board) IsInCheck(side Player) bool {
	if side == PlayerNone {
		return false
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pos := Position{X: x, Y: y}
			piece := b.At(pos)
			if piece.Type == King && piece.Player == side && b.IsSquareThreatened(pos, side) {
				return true
			}
		}
	}
	return false
}

// HasAnyLegalMove reports whether some piece of side has a legal move.
func (b *Board) HasAnyLegalMove(side Player) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pos := Position{X: x, Y: y}
			if b.At(pos).Player == side && len(b.LegalMoves(pos)) > 0 {
				return true
			}
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no legal move.
func (b *Board) IsCheckmate() bool {
	return b.IsInCheck(b.turn) && !b.HasAnyLegalMove(b.turn)
}

// IsStalemate reports whether the side to move is not in check but has no legal move.
func (b *Board) IsStalemate() bool {
	return !b.IsInCheck(b.turn) && !b.HasAnyLegalMove(b.turn)
}

// Status summarises the check flags of the side to move.
type Status struct {
	Check     bool `json:"check"`
	Checkmate bool `json:"checkmate"`
	Stalemate bool `json:"stalemate"`
}

// Status evaluates check, checkmate and stalemate for the side to move in one pass.
// While a promotion is pending the turn has not passed yet and only Check is reported.
func (b *Board) Status() Status {
	check := b.IsInCheck(b.turn)
	if b.promotion != nil {
		return Status{Check: check}
	}
	canMove := b.HasAnyLegalMove(b.turn)
	return Status{
		Check:     check,
		Checkmate: check && !canMove,
		Stalemate: !check && !canMove,
	}
}

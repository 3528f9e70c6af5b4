package model

import "math/rand"

// Shuffle scatters the current occupants, empty squares included, uniformly over the
// grid for casual games. Movement history, selection and last move are reset.
// The result may have no king, several kings, or pawns on a back rank.
func (b *Board) Shuffle(rng *rand.Rand) {
	squares := make([]Piece, 0, 64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := b.grid[y][x]
			piece.HasMoved = false
			squares = append(squares, piece)
		}
	}
	rng.Shuffle(len(squares), func(i, j int) {
		squares[i], squares[j] = squares[j], squares[i]
	})
	for i, piece := range squares {
		b.grid[i/8][i%8] = piece
	}
	b.promotion = nil
	b.lastMove = nil
	b.ClearSelection()
}

package model

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// FromFEN builds a board from the placement, side to move and castling fields of a FEN
// string. Kings and rooks count as moved unless a castling right names them.
// En passant and the move clocks are ignored.
func FromFEN(fen string) (board Board, err error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 || !validPlacement(fields[0]) {
		return Board{}, fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
	}
	if fields[1] != "w" && fields[1] != "b" {
		return Board{}, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}
	castling := "-"
	if len(fields) > 2 {
		castling = fields[2]
	}

	defer func() {
		if r := recover(); r != nil {
			board, err = Board{}, fmt.Errorf("%w: %v", ErrInvalidFEN, r)
		}
	}()
	dt := dragontoothmg.ParseFen(strings.Join([]string{fields[0], fields[1], "-", "-", "0", "1"}, " "))

	turn := PlayerSecond
	if dt.Wtomove {
		turn = PlayerFirst
	}
	board = NewEmptyBoard(turn)
	for sq := uint(0); sq < 64; sq++ {
		pos := Position{X: int(sq % 8), Y: int(sq / 8)}
		mask := uint64(1) << sq
		if kind := kindAt(&dt.White, mask); kind != Empty {
			board.set(pos, Piece{Type: kind, Player: PlayerFirst, HasMoved: kind == King || kind == Rook})
		} else if kind := kindAt(&dt.Black, mask); kind != Empty {
			board.set(pos, Piece{Type: kind, Player: PlayerSecond, HasMoved: kind == King || kind == Rook})
		}
	}

	for _, right := range castling {
		var owner Player
		var rookX int
		switch right {
		case 'K':
			owner, rookX = PlayerFirst, 7
		case 'Q':
			owner, rookX = PlayerFirst, 0
		case 'k':
			owner, rookX = PlayerSecond, 7
		case 'q':
			owner, rookX = PlayerSecond, 0
		default:
			continue
		}
		board.grantCastling(owner, rookX)
	}
	return board, nil
}

func kindAt(bb *dragontoothmg.Bitboards, mask uint64) PieceType {
	switch {
	case bb.Pawns&mask != 0:
		return Pawn
	case bb.Knights&mask != 0:
		return Knight
	case bb.Bishops&mask != 0:
		return Bishop
	case bb.Rooks&mask != 0:
		return Rook
	case bb.Queens&mask != 0:
		return Queen
	case bb.Kings&mask != 0:
		return King
	}
	return Empty
}

// grantCastling clears the moved flag of owner's home-rank king and the rook on file rookX.
func (b *Board) grantCastling(owner Player, rookX int) {
	y := owner.homeRank()
	rook := Position{X: rookX, Y: y}
	if p := b.At(rook); p.Type != Rook || p.Player != owner {
		return
	}
	for x := 0; x < 8; x++ {
		pos := Position{X: x, Y: y}
		if p := b.At(pos); p.Type == King && p.Player == owner {
			b.grid[y][x].HasMoved = false
			b.grid[y][rookX].HasMoved = false
			return
		}
	}
}

// validPlacement checks the shape of the FEN placement field: eight ranks of eight squares.
func validPlacement(placement string) bool {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return false
	}
	for _, rank := range ranks {
		width := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				width += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				width++
			default:
				return false
			}
		}
		if width != 8 {
			return false
		}
	}
	return true
}

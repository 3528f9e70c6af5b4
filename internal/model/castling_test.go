package model

import "testing"

func castlingBoard(t *testing.T) Board {
	t.Helper()
	b := NewEmptyBoard(PlayerFirst)
	put(t, &b, "d1", King, PlayerFirst)
	put(t, &b, "a1", Rook, PlayerFirst)
	put(t, &b, "h1", Rook, PlayerFirst)
	put(t, &b, "d8", King, PlayerSecond)
	return b
}

func TestCastlingMove_BothSides(t *testing.T) {
	b := castlingBoard(t)
	king := sq(t, "d1")

	m, ok := b.CastlingMove(king, Queenside)
	if !ok || m.To != sq(t, "b1") {
		t.Fatalf("queenside: got %v, %v", m, ok)
	}
	m, ok = b.CastlingMove(king, Kingside)
	if !ok || m.To != sq(t, "f1") {
		t.Fatalf("kingside: got %v, %v", m, ok)
	}

	got := destinations(b.LegalMoves(king))
	want := []string{"b1", "c1", "c2", "d2", "e1", "e2", "f1"}
	if !equalStrings(got, want) {
		t.Fatalf("king moves with castling: got %v, want %v", got, want)
	}
}

func TestApplyMove_CastlingRelocatesRook(t *testing.T) {
	cases := []struct {
		name     string
		move     string
		king     string
		rook     string
		rookFrom string
	}{
		{"queenside", "d1 b1", "b1", "a1", ""},
		{"kingside", "d1 f1", "f1", "g1", "h1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := castlingBoard(t)
			if err := b.ApplyText(c.move); err != nil {
				t.Fatalf("castle: %v", err)
			}
			if k := b.At(sq(t, c.king)); k.Type != King || !k.HasMoved {
				t.Fatalf("king not relocated: %+v", k)
			}
			if r := b.At(sq(t, c.rook)); r.Type != Rook || r.Player != PlayerFirst || !r.HasMoved {
				t.Fatalf("rook not relocated: %+v", r)
			}
			if !b.At(sq(t, "d1")).IsEmpty() {
				t.Fatalf("king origin must be empty")
			}
			if c.rookFrom != "" && !b.At(sq(t, c.rookFrom)).IsEmpty() {
				t.Fatalf("rook origin %s must be empty", c.rookFrom)
			}
			if !b.At(sq(t, "c1")).IsEmpty() || !b.At(sq(t, "e1")).IsEmpty() {
				t.Fatalf("squares the king crossed must stay empty")
			}
			if b.Turn() != PlayerSecond {
				t.Fatalf("turn should pass after castling")
			}
		})
	}
}

func TestCastlingMove_KingInCornerWithFarRook(t *testing.T) {
	b := NewEmptyBoard(PlayerFirst)
	put(t, &b, "a1", King, PlayerFirst)
	put(t, &b, "h1", Rook, PlayerFirst)
	put(t, &b, "e8", King, PlayerSecond)
	king := sq(t, "a1")

	if _, ok := b.CastlingMove(king, Queenside); ok {
		t.Fatalf("no rook on file a: queenside must be unavailable")
	}
	m, ok := b.CastlingMove(king, Kingside)
	if !ok || m != (Move{From: king, To: sq(t, "c1")}) {
		t.Fatalf("kingside toward h1: got %v, %v", m, ok)
	}
	if err := b.ApplyMove(m); err != nil {
		t.Fatalf("apply castle: %v", err)
	}
	if r := b.At(sq(t, "d1")); r.Type != Rook || !r.HasMoved {
		t.Fatalf("rook should land on d1 next to the king, got %+v", r)
	}
	for _, name := range []string{"a1", "b1", "h1"} {
		if !b.At(sq(t, name)).IsEmpty() {
			t.Fatalf("%s should be empty after castling", name)
		}
	}
	if got := RookMove(m); got.String() != "h1 d1" {
		t.Fatalf("RookMove = %s", got)
	}
}

func TestCastlingMove_Unavailable(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, b *Board)
		side  CastleSide
	}{
		{"king moved", func(t *testing.T, b *Board) {
			_ = b.Place(sq(t, "d1"), Piece{Type: King, Player: PlayerFirst, HasMoved: true})
		}, Kingside},
		{"rook moved", func(t *testing.T, b *Board) {
			_ = b.Place(sq(t, "h1"), Piece{Type: Rook, Player: PlayerFirst, HasMoved: true})
		}, Kingside},
		{"enemy rook in the corner", func(t *testing.T, b *Board) {
			put(t, b, "a1", Rook, PlayerSecond)
		}, Queenside},
		{"not a rook", func(t *testing.T, b *Board) {
			put(t, b, "h1", Queen, PlayerFirst)
		}, Kingside},
		{"piece in between", func(t *testing.T, b *Board) {
			put(t, b, "g1", Knight, PlayerFirst)
		}, Kingside},
		{"landing square attacked", func(t *testing.T, b *Board) {
			put(t, b, "f8", Rook, PlayerSecond)
		}, Kingside},
		{"crossed square attacked", func(t *testing.T, b *Board) {
			put(t, b, "c8", Rook, PlayerSecond)
		}, Queenside},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := castlingBoard(t)
			c.setup(t, &b)
			if m, ok := b.CastlingMove(sq(t, "d1"), c.side); ok {
				t.Fatalf("castling should be unavailable, got %v", m)
			}
		})
	}
}

func TestLegalMoves_NoCastlingOutOfCheck(t *testing.T) {
	b := castlingBoard(t)
	put(t, &b, "d5", Rook, PlayerSecond)

	if !b.IsInCheck(PlayerFirst) {
		t.Fatalf("expected check on the d-file")
	}
	for _, m := range b.LegalMoves(sq(t, "d1")) {
		if m.IsCastle(b.At(m.From)) {
			t.Fatalf("castling offered while in check: %v", m)
		}
	}
	if _, ok := b.CastlingMove(sq(t, "d1"), Kingside); ok {
		t.Fatalf("the king's own square is threatened")
	}
}

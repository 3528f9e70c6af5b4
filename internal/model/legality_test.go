package model

import (
	"math/rand"
	"testing"
)

func TestIsCheckmate_QueenSupportedByKing(t *testing.T) {
	b := NewEmptyBoard(PlayerSecond)
	put(t, &b, "h8", King, PlayerSecond)
	put(t, &b, "g7", Queen, PlayerFirst)
	put(t, &b, "f6", King, PlayerFirst)

	if !b.IsInCheck(PlayerSecond) {
		t.Fatalf("expected second player to be in check")
	}
	if b.HasAnyLegalMove(PlayerSecond) {
		t.Fatalf("expected no legal moves")
	}
	if !b.IsCheckmate() {
		t.Fatalf("expected checkmate")
	}
	if b.IsStalemate() {
		t.Fatalf("checkmate is not stalemate")
	}
	if st := b.Status(); !st.Check || !st.Checkmate || st.Stalemate {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestIsCheckmate_BackRank(t *testing.T) {
	b := NewEmptyBoard(PlayerFirst)
	put(t, &b, "g1", King, PlayerFirst)
	put(t, &b, "f2", Pawn, PlayerFirst)
	put(t, &b, "g2", Pawn, PlayerFirst)
	put(t, &b, "h2", Pawn, PlayerFirst)
	put(t, &b, "a1", Queen, PlayerSecond)
	put(t, &b, "a8", King, PlayerSecond)

	if !b.IsCheckmate() {
		t.Fatalf("expected back rank mate")
	}
}

func TestIsStalemate(t *testing.T) {
	b := NewEmptyBoard(PlayerSecond)
	put(t, &b, "h8", King, PlayerSecond)
	put(t, &b, "f7", Queen, PlayerFirst)
	put(t, &b, "g6", King, PlayerFirst)

	if b.IsInCheck(PlayerSecond) {
		t.Fatalf("expected no check")
	}
	if !b.IsStalemate() {
		t.Fatalf("expected stalemate")
	}
	if b.IsCheckmate() {
		t.Fatalf("stalemate is not checkmate")
	}
}

func TestCheckEscapes(t *testing.T) {
	b := NewEmptyBoard(PlayerFirst)
	put(t, &b, "e1", King, PlayerFirst)
	put(t, &b, "c3", Bishop, PlayerFirst)
	put(t, &b, "a1", Rook, PlayerFirst)
	put(t, &b, "e8", Rook, PlayerSecond)
	put(t, &b, "h8", King, PlayerSecond)

	if !b.IsInCheck(PlayerFirst) {
		t.Fatalf("expected check along the e-file")
	}
	if b.IsCheckmate() {
		t.Fatalf("check can be blocked")
	}
	if got, want := destinations(b.LegalMoves(sq(t, "c3"))), []string{"e5"}; !equalStrings(got, want) {
		t.Fatalf("only the blocking move is legal for the bishop: got %v, want %v", got, want)
	}
	if got := b.LegalMoves(sq(t, "a1")); len(got) != 0 {
		t.Fatalf("rook cannot block or capture: got %v", destinations(got))
	}
}

func TestIsSquareThreatened(t *testing.T) {
	b := NewBoard()
	cases := []struct {
		square   string
		defender Player
		want     bool
	}{
		{"f3", PlayerFirst, false},
		{"f6", PlayerFirst, true},
		{"e5", PlayerFirst, true},
		{"e4", PlayerFirst, false},
		{"c3", PlayerSecond, true},
		{"d5", PlayerSecond, false},
	}
	for _, c := range cases {
		if got := b.IsSquareThreatened(sq(t, c.square), c.defender); got != c.want {
			t.Errorf("%s defended by %v: got %v, want %v", c.square, c.defender, got, c.want)
		}
	}
}

func TestIsInCheck_NoKing(t *testing.T) {
	b := NewEmptyBoard(PlayerFirst)
	put(t, &b, "a1", Rook, PlayerFirst)
	put(t, &b, "a8", Queen, PlayerSecond)

	if b.IsInCheck(PlayerFirst) {
		t.Fatalf("a side without a king is never in check")
	}
	if b.IsCheckmate() {
		t.Fatalf("no king, no checkmate")
	}
	if got := b.LegalMoves(sq(t, "a1")); len(got) == 0 {
		t.Fatalf("pieces of a kingless side still move")
	}
}

func TestIsInCheck_SeveralKings(t *testing.T) {
	b := NewEmptyBoard(PlayerFirst)
	put(t, &b, "a1", King, PlayerFirst)
	put(t, &b, "h1", King, PlayerFirst)
	put(t, &b, "h8", Rook, PlayerSecond)

	if !b.IsInCheck(PlayerFirst) {
		t.Fatalf("any threatened king puts its side in check")
	}
	if got, want := destinations(b.LegalMoves(sq(t, "a1"))), []string{}; !equalStrings(got, want) {
		t.Fatalf("the unthreatened king cannot resolve the check: got %v", got)
	}
}

func TestCheckmateAndStalemateExclusive_ShuffledBoards(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 40; i++ {
		b := NewBoard()
		b.Shuffle(rng)
		st := b.Status()
		if st.Checkmate && st.Stalemate {
			t.Fatalf("board %d: checkmate and stalemate at once", i)
		}
		if b.IsCheckmate() && b.IsStalemate() {
			t.Fatalf("board %d: checkmate and stalemate at once", i)
		}
		if st.Checkmate != b.IsCheckmate() || st.Stalemate != b.IsStalemate() {
			t.Fatalf("board %d: Status disagrees with the predicates", i)
		}
	}
}

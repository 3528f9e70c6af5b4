package model

import (
	"sort"
	"testing"
)

func sq(t testing.TB, s string) Position {
	t.Helper()
	p, ok := ParsePosition(s)
	if !ok {
		t.Fatalf("invalid square %q", s)
	}
	return p
}

func put(t testing.TB, b *Board, s string, kind PieceType, owner Player) {
	t.Helper()
	if err := b.Place(sq(t, s), NewPiece(kind, owner)); err != nil {
		t.Fatalf("place %s on %s: %v", kind, s, err)
	}
}

func destinations(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.To.String())
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

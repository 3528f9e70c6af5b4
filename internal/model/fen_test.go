package model

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestFromFEN_Placement(t *testing.T) {
	b, err := FromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if b.Turn() != PlayerSecond {
		t.Fatalf("turn = %v", b.Turn())
	}
	cases := map[string]Piece{
		"h8": {Type: King, Player: PlayerSecond, HasMoved: true},
		"f7": {Type: Queen, Player: PlayerFirst},
		"g6": {Type: King, Player: PlayerFirst, HasMoved: true},
		"a1": EmptyPiece,
	}
	for square, want := range cases {
		if got := b.At(sq(t, square)); got != want {
			t.Errorf("%s = %+v, want %+v", square, got, want)
		}
	}
	if !b.IsStalemate() {
		t.Fatalf("expected stalemate")
	}
}

func TestFromFEN_CastlingRights(t *testing.T) {
	b, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w Kq - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	e1 := sq(t, "e1")
	if _, ok := b.CastlingMove(e1, Kingside); !ok {
		t.Fatalf("K right should allow kingside castling")
	}
	if _, ok := b.CastlingMove(e1, Queenside); ok {
		t.Fatalf("no Q right: queenside must be unavailable")
	}
	if !b.At(sq(t, "a1")).HasMoved || b.At(sq(t, "h1")).HasMoved {
		t.Fatalf("rook flags do not follow the castling field")
	}
	if b.At(sq(t, "a8")).HasMoved || !b.At(sq(t, "h8")).HasMoved {
		t.Fatalf("second player rook flags do not follow the castling field")
	}
}

func TestFromFEN_Invalid(t *testing.T) {
	for _, fen := range []string{
		"",
		"8/8/8/8 w - - 0 1",
		"9/8/8/8/8/8/8/8 w - - 0 1",
		"7x/8/8/8/8/8/8/8 w - - 0 1",
		"8/8/8/8/8/8/8/8 x - - 0 1",
		"8/8/8/8/8/8/8/8",
	} {
		if _, err := FromFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("FromFEN(%q) = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

// Positions without castling rights or en passant targets, where the move sets must match
// a reference generator exactly.
var oracleFENs = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w - - 0 1",
	"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b - - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w - - 1 8",
	"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
	"4k3/8/8/8/8/8/4r3/4K3 w - - 0 1",
}

func TestLegalMoves_MatchReferenceGenerator(t *testing.T) {
	for _, fen := range oracleFENs {
		t.Run(fen, func(t *testing.T) {
			b, err := FromFEN(fen)
			if err != nil {
				t.Fatalf("FromFEN: %v", err)
			}
			var got []string
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					pos := Position{X: x, Y: y}
					if b.At(pos).Player != b.Turn() {
						continue
					}
					for _, m := range b.LegalMoves(pos) {
						got = append(got, m.String())
					}
				}
			}
			sort.Strings(got)

			ref := dragontoothmg.ParseFen(fen)
			seen := map[string]bool{}
			var want []string
			for _, m := range ref.GenerateLegalMoves() {
				from := Position{X: int(m.From() % 8), Y: int(m.From() / 8)}
				to := Position{X: int(m.To() % 8), Y: int(m.To() / 8)}
				key := Move{From: from, To: to}.String()
				if !seen[key] {
					seen[key] = true
					want = append(want, key)
				}
			}
			sort.Strings(want)

			if !equalStrings(got, want) {
				t.Fatalf("move sets differ\n got: %v\nwant: %v", got, want)
			}
			if status := b.Status(); (len(got) == 0) != (status.Checkmate || status.Stalemate) {
				t.Fatalf("status %+v inconsistent with %d legal moves", status, len(got))
			}
		})
	}
}

func TestShuffle_KeepsMaterialAndNeverPanics(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 25; i++ {
		b := NewBoard()
		_ = b.ApplyText("e2 e4")
		b.Shuffle(rng)

		pieces := 0
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				p := b.At(Position{X: x, Y: y})
				if p.HasMoved {
					t.Fatalf("shuffle must reset movement flags")
				}
				if !p.IsEmpty() {
					pieces++
				}
				_ = b.LegalMoves(Position{X: x, Y: y})
			}
		}
		if pieces != 32 {
			t.Fatalf("board %d: %d pieces after shuffle", i, pieces)
		}
		if _, ok := b.LastMove(); ok {
			t.Fatalf("shuffle must clear the last move")
		}
		_ = b.Snapshot()
	}
}

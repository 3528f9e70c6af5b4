package render

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chessduel/internal/model"
)

// Hotseat is a two-players-one-keyboard game driven by typed commands:
//
//	e2        select the piece on e2 and show its moves
//	e2 e4     move
//	promote q finish a pending promotion
//	q         quit
type Hotseat struct {
	Board   model.Board
	Message string
}

func NewHotseat(board model.Board) *Hotseat {
	return &Hotseat{Board: board}
}

// Execute runs one command line and reports whether the user asked to quit.
// Failures are reported through Message and leave the board unchanged.
func (h *Hotseat) Execute(line string) (quit bool) {
	line = strings.TrimSpace(line)
	h.Message = ""

	switch {
	case line == "":
		h.Board.ClearSelection()
	case line == "q" || line == "quit":
		return true
	case strings.HasPrefix(line, "promote "):
		kind, ok := model.ParsePieceType(strings.TrimPrefix(line, "promote "))
		if !ok {
			h.Message = fmt.Sprintf("unknown piece %q", strings.TrimPrefix(line, "promote "))
			return false
		}
		if err := h.Board.Promote(kind); err != nil {
			h.Message = err.Error()
		}
	case len(line) == 2:
		pos, ok := model.ParsePosition(line)
		if !ok {
			h.Message = fmt.Sprintf("unknown square %q", line)
			return false
		}
		if !h.Board.Select(pos) {
			h.Message = fmt.Sprintf("nothing of %s's to move on %s", h.Board.Turn(), pos)
		}
	default:
		if err := h.Board.ApplyText(line); err != nil {
			h.Message = err.Error()
		}
	}
	return false
}

// Snapshot returns the board as Draw expects it.
func (h *Hotseat) Snapshot() model.BoardSnapshot {
	return h.Board.Snapshot()
}

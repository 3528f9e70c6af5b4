// Package render paints a board snapshot onto a terminal screen.
package render

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chessduel/internal/model"
	"github.com/gdamore/tcell/v2"
)

// Theme holds the styles used to draw the board.
type Theme struct {
	Empty     tcell.Style
	First     tcell.Style
	Second    tcell.Style
	Selected  tcell.Style
	Candidate tcell.Style
	Label     tcell.Style
	Text      tcell.Style
}

func DefaultTheme() Theme {
	return Theme{
		Empty:     tcell.StyleDefault.Foreground(tcell.NewRGBColor(100, 100, 100)),
		First:     tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
		Second:    tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		Selected:  tcell.StyleDefault.Background(tcell.ColorBlue),
		Candidate: tcell.StyleDefault.Background(tcell.NewRGBColor(0, 255, 0)),
		Label:     tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow),
		Text:      tcell.StyleDefault,
	}
}

type Options struct {
	Theme Theme
	// Message is printed under the status line, e.g. the last input error.
	Message string
}

// Board geometry on screen.
const (
	boardLeft  = 4  // column of file a
	rightLabel = 22 // column of the right-hand rank numbers
	fileRow    = 9
	statusRow  = 11
	messageRow = 12
)

// Glyph is the character drawn for a piece: K Q R B N for pieces, p for pawns and x for an empty square.
func Glyph(p model.Piece) rune {
	switch p.Type {
	case model.Empty:
		return 'x'
	case model.Pawn:
		return 'p'
	}
	return rune(p.Type.Letter()[0])
}

// Cell returns the screen cell of square pos.
func Cell(pos model.Position) (x, y int) {
	return boardLeft + 2*pos.X, 7 - pos.Y
}

// Draw clears screen and paints the snapshot with rank and file labels and a status line.
// The caller shows the screen.
func Draw(screen tcell.Screen, snap model.BoardSnapshot, opts Options) {
	th := opts.Theme
	if th == (Theme{}) {
		th = DefaultTheme()
	}
	screen.Clear()

	for y := 7; y >= 0; y-- {
		row := 7 - y
		label := rune('1' + y)
		screen.SetContent(0, row, label, nil, th.Label)
		screen.SetContent(rightLabel, row, label, nil, th.Label)

		for x := 0; x < 8; x++ {
			pos := model.Position{X: x, Y: y}
			piece := snap.At(pos)
			style := pieceStyle(th, piece)
			if snap.Selected != nil && *snap.Selected == pos {
				style = th.Selected
			}
			if snap.IsCandidate(pos) {
				_, bg, _ := th.Candidate.Decompose()
				style = style.Background(bg)
			}
			cx, cy := Cell(pos)
			screen.SetContent(cx, cy, Glyph(piece), nil, style)
		}
	}

	drawText(screen, boardLeft, fileRow, th.Label, "a b c d e f g h")
	drawText(screen, 0, statusRow, th.Text, Status(snap))
	if opts.Message != "" {
		drawText(screen, 0, messageRow, th.Text, opts.Message)
	}
}

func pieceStyle(th Theme, p model.Piece) tcell.Style {
	switch p.Player {
	case model.PlayerFirst:
		return th.First
	case model.PlayerSecond:
		return th.Second
	}
	return th.Empty
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// Status describes whose turn it is and how the game stands.
func Status(snap model.BoardSnapshot) string {
	switch {
	case snap.Status.Checkmate:
		return fmt.Sprintf("checkmate, %s wins", snap.Turn.Opponent())
	case snap.Status.Stalemate:
		return "stalemate"
	case snap.Phase == model.PhaseAwaitingPromotion:
		return fmt.Sprintf("%s promotes on %s: %s", snap.Turn, snap.Promotion, strings.Join(promotionChoices, " "))
	case snap.Status.Check:
		return fmt.Sprintf("%s to move, check", snap.Turn)
	}
	return fmt.Sprintf("%s to move", snap.Turn)
}

var promotionChoices = []string{"Q", "R", "B", "N"}

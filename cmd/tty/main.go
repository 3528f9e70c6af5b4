package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/benbeisheim/chessduel/internal/model"
	"github.com/benbeisheim/chessduel/internal/render"
	"github.com/gdamore/tcell/v2"
)

func main() {
	fen := flag.String("fen", "", "start from this FEN position instead of the standard one")
	casual := flag.Bool("casual", false, "shuffle the starting position")
	seed := flag.Int64("seed", 0, "seed for -casual (defaults to the current time)")
	flag.Parse()

	board := model.NewBoard()
	if *fen != "" {
		var err error
		if board, err = model.FromFEN(*fen); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *casual {
		if *seed == 0 {
			*seed = time.Now().UnixNano()
		}
		board.Shuffle(rand.New(rand.NewSource(*seed)))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()

	run(screen, render.NewHotseat(board))
}

const promptRow = 14

func run(screen tcell.Screen, h *render.Hotseat) {
	var input []rune
	for {
		render.Draw(screen, h.Snapshot(), render.Options{Message: h.Message})
		prompt := "> " + string(input)
		for i, r := range []rune(prompt) {
			screen.SetContent(i, promptRow, r, nil, tcell.StyleDefault)
		}
		screen.ShowCursor(len([]rune(prompt)), promptRow)
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyEnter:
				if h.Execute(string(input)) {
					return
				}
				input = input[:0]
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(input) > 0 {
					input = input[:len(input)-1]
				}
			case tcell.KeyRune:
				input = append(input, ev.Rune())
			}
		}
	}
}

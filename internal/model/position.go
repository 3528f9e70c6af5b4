package model

import "fmt"

// Position addresses a square: X is the file (a-h), Y the rank (1-8), both zero based.
// A Position may lie off the board; check IsValid before reading the grid with it.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ParsePosition decodes two-character square notation such as "e2".
func ParsePosition(text string) (Position, bool) {
	if len(text) != 2 {
		return Position{}, false
	}
	p := Position{X: int(text[0]) - 'a', Y: int(text[1]) - '1'}
	if !p.IsValid() {
		return Position{}, false
	}
	return p, true
}

func (p Position) IsValid() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

func (p Position) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return fmt.Sprintf("%c%d", p.X+'a', p.Y+1)
}

// Side steps dist squares along an orthogonal direction: 0 north, 1 east, 2 south, 3 west.
// dir must be in 0..3 and dist positive; anything else is a programming error and panics.
func (p Position) Side(dir, dist int) Position {
	if dist <= 0 {
		panic(fmt.Sprintf("invalid distance %d", dist))
	}
	switch dir {
	case 0:
		return Position{X: p.X, Y: p.Y + dist}
	case 1:
		return Position{X: p.X + dist, Y: p.Y}
	case 2:
		return Position{X: p.X, Y: p.Y - dist}
	case 3:
		return Position{X: p.X - dist, Y: p.Y}
	}
	panic(fmt.Sprintf("invalid direction %d", dir))
}

// Corner steps dist squares along a diagonal: 0 north-east, 1 south-east, 2 north-west, 3 south-west.
// Same preconditions as Side.
func (p Position) Corner(dir, dist int) Position {
	if dist <= 0 {
		panic(fmt.Sprintf("invalid distance %d", dist))
	}
	switch dir {
	case 0:
		return Position{X: p.X + dist, Y: p.Y + dist}
	case 1:
		return Position{X: p.X + dist, Y: p.Y - dist}
	case 2:
		return Position{X: p.X - dist, Y: p.Y + dist}
	case 3:
		return Position{X: p.X - dist, Y: p.Y - dist}
	}
	panic(fmt.Sprintf("invalid direction %d", dir))
}

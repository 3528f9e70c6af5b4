package model

// Player identifies a side, or nobody for an empty square.
type Player string

const (
	PlayerNone   Player = ""
	PlayerFirst  Player = "white"
	PlayerSecond Player = "black"
)

// Opponent returns the other side. PlayerNone has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case PlayerFirst:
		return PlayerSecond
	case PlayerSecond:
		return PlayerFirst
	}
	return PlayerNone
}

// forward is the rank direction this side's pawns advance in.
func (p Player) forward() int {
	if p == PlayerSecond {
		return -1
	}
	return 1
}

// homeRank is the rank holding this side's pieces at the start of a game.
func (p Player) homeRank() int {
	if p == PlayerSecond {
		return 7
	}
	return 0
}

// lastRank is the opposing back rank, where pawns promote.
func (p Player) lastRank() int {
	return p.Opponent().homeRank()
}

func (p Player) String() string {
	if p == PlayerNone {
		return "none"
	}
	return string(p)
}

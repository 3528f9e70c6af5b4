package game

import "errors"

var (
	ErrGameFull         = errors.New("game is full")
	ErrNotInGame        = errors.New("player not in game")
	ErrGameOver         = errors.New("game is over")
	ErrTimeout          = errors.New("out of time")
	ErrAlreadyConnected = errors.New("connection already exists")
)

package service

import "errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameExists     = errors.New("game already exists")
	ErrAlreadyQueued  = errors.New("player already in queue")
	ErrAlreadyMatched = errors.New("player already matched")
)

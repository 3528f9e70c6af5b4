package model

import "errors"

var (
	ErrInvalidPosition  = errors.New("invalid position")
	ErrInvalidMove      = errors.New("invalid move")
	ErrEmptySquare      = errors.New("no piece at from square")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrIllegalMove      = errors.New("illegal move")
	ErrPromotionPending = errors.New("promotion pending")
	ErrNoPromotion      = errors.New("no promotion pending")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
	ErrInvalidFEN       = errors.New("invalid fen")
)

package ws

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benbeisheim/chessduel/internal/model"
)

// Replies of the line protocol.
const (
	ReplyOK  = "ok"
	ReplyErr = "err"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command is one line of the plain-text protocol:
//
//	move e2 e4
//	promote Q
//	surrender
type Command struct {
	Type    MessageType
	Move    model.Move
	Promote model.PieceType
}

func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "move":
		m, ok := model.ParseMove(rest)
		if !ok {
			return Command{}, fmt.Errorf("%w: %q", model.ErrInvalidMove, rest)
		}
		return Command{Type: MessageTypeMove, Move: m}, nil
	case "promote":
		kind, ok := model.ParsePieceType(rest)
		if !ok {
			return Command{}, fmt.Errorf("%w: %q", model.ErrInvalidPromotion, rest)
		}
		return Command{Type: MessageTypePromote, Promote: kind}, nil
	case "surrender":
		if rest != "" {
			return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
		}
		return Command{Type: MessageTypeSurrender}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
}

func (c Command) String() string {
	switch c.Type {
	case MessageTypeMove:
		return "move " + c.Move.String()
	case MessageTypePromote:
		return "promote " + c.Promote.Letter()
	case MessageTypeSurrender:
		return "surrender"
	}
	return ""
}

package pkg

import (
	"github.com/notnil/chess"

	"github.com/qnkhuat/clickchess/pkg/rules"
)

type Sound int

const (
	SoundNone Sound = iota
	SoundMove
	SoundCapture
	SoundCheck
)

func (s Sound) String() string {
	switch s {
	case SoundMove:
		return "move"
	case SoundCapture:
		return "capture"
	case SoundCheck:
		return "check"
	default:
		return "none"
	}
}

// classify picks the one sound a move makes. Check wins over capture.
func classify(check, capture bool) Sound {
	switch {
	case check:
		return SoundCheck
	case capture:
		return SoundCapture
	default:
		return SoundMove
	}
}

type EventType int

const (
	TypeEventMove EventType = iota
	TypeEventThinking
	TypeEventGameOver
	TypeEventReset
	TypeEventError
)

func (e EventType) String() string {
	switch e {
	case TypeEventMove:
		return "TypeEventMove"
	case TypeEventThinking:
		return "TypeEventThinking"
	case TypeEventGameOver:
		return "TypeEventGameOver"
	case TypeEventReset:
		return "TypeEventReset"
	case TypeEventError:
		return "TypeEventError"
	default:
		return "Unknown EventType"
	}
}

// Event is published by a Match on the goroutine that changed its state.
type Event interface {
	Type() EventType
}

// Event types

type EventMove struct {
	Move  rules.Move
	SAN   string
	Color chess.Color
	By    PlayerKind
	Sound Sound
}

func (e EventMove) Type() EventType {
	return TypeEventMove
}

type EventThinking struct {
	Color      chess.Color
	Generation uint64
}

func (e EventThinking) Type() EventType {
	return TypeEventThinking
}

type EventGameOver struct {
	Outcome rules.Outcome
}

func (e EventGameOver) Type() EventType {
	return TypeEventGameOver
}

type EventReset struct{}

func (e EventReset) Type() EventType {
	return TypeEventReset
}

type EventError struct {
	Err error
}

func (e EventError) Type() EventType {
	return TypeEventError
}

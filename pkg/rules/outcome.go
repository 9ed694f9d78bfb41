package rules

import (
	"fmt"

	"github.com/notnil/chess"
)

type Termination int

const (
	NoTermination Termination = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	SeventyFiveMoves
	FivefoldRepetition
)

func (t Termination) String() string {
	switch t {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case SeventyFiveMoves:
		return "seventy-five-move rule"
	case FivefoldRepetition:
		return "fivefold repetition"
	default:
		return "none"
	}
}

// Outcome is the result of a finished game. Winner is chess.NoColor for a draw.
type Outcome struct {
	Winner      chess.Color
	Termination Termination
}

func (o Outcome) IsDraw() bool {
	return o.Winner == chess.NoColor
}

func (o Outcome) String() string {
	if o.IsDraw() {
		return fmt.Sprintf("Draw by %s!", o.Termination)
	}
	return fmt.Sprintf("%s wins by %s!", ColorName(o.Winner), o.Termination)
}

// Result is the PGN style score of the outcome.
func (o Outcome) Result() string {
	switch o.Winner {
	case chess.White:
		return "1-0"
	case chess.Black:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}

// insufficientMaterial reports positions where neither side can mate:
// bare kings, a single minor piece, or only bishops all on one square color.
func insufficientMaterial(pieces map[chess.Square]chess.Piece) bool {
	minors := 0
	knights := 0
	bishopColors := map[int]bool{}
	for sq, p := range pieces {
		switch p.Type() {
		case chess.King:
		case chess.Knight:
			minors++
			knights++
		case chess.Bishop:
			minors++
			bishopColors[(int(sq.File())+int(sq.Rank()))%2] = true
		default:
			return false
		}
	}
	if minors <= 1 {
		return true
	}
	return knights == 0 && len(bishopColors) == 1
}

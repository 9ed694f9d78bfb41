// Package rules wraps github.com/notnil/chess behind the small set of
// queries the board UI and the computer player need.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

var (
	ErrIllegalMove = errors.New("rules: illegal move")
	ErrGameOver    = errors.New("rules: game is over")
	ErrNoHistory   = errors.New("rules: no move to undo")
	ErrBadMove     = errors.New("rules: malformed move")
)

// Oracle answers legality and outcome questions about a single board and
// mutates it. Implementations are not safe for concurrent use; use Clone to
// hand a copy to another goroutine.
type Oracle interface {
	LegalMoves() []Move
	IsLegal(m Move) bool
	Apply(m Move) error
	UndoLast() error
	IsCapture(m Move) bool
	InCheck() bool
	IsGameOver() bool
	Outcome() (Outcome, bool)
	Reset()

	Turn() chess.Color
	PieceAt(sq chess.Square) chess.Piece
	SquareMap() map[chess.Square]chess.Piece
	FEN() string
	SAN(m Move) string
	History() []string
	LastMove() (Move, bool)
	Clone() Oracle
}

// Move is an origin/destination pair with an optional promotion piece.
type Move struct {
	From  chess.Square
	To    chess.Square
	Promo chess.PieceType
}

func (m Move) String() string {
	s := m.From.String() + m.To.String()
	switch m.Promo {
	case chess.Queen:
		s += "q"
	case chess.Rook:
		s += "r"
	case chess.Bishop:
		s += "b"
	case chess.Knight:
		s += "n"
	}
	return s
}

// ParseMove reads a move in UCI form, e.g. "e2e4" or "a7a8q".
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			m.Promo = chess.Queen
		case 'r':
			m.Promo = chess.Rook
		case 'b':
			m.Promo = chess.Bishop
		case 'n':
			m.Promo = chess.Knight
		default:
			return Move{}, fmt.Errorf("%w: promotion %q", ErrBadMove, s[4])
		}
	}
	return m, nil
}

// ParseSquare reads a square name such as "e4".
func ParseSquare(s string) (chess.Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return chess.NoSquare, fmt.Errorf("%w: square %q", ErrBadMove, s)
	}
	return Square(chess.File(s[0]-'a'), chess.Rank(s[1]-'1')), nil
}

// Square returns the square on file f and rank r. A1 is square 0.
func Square(f chess.File, r chess.Rank) chess.Square {
	return chess.Square((int(r) * 8) + int(f))
}

// LastRank is the promotion rank for pawns of color c.
func LastRank(c chess.Color) chess.Rank {
	if c == chess.Black {
		return chess.Rank1
	}
	return chess.Rank8
}

// ColorName spells out a color for people.
func ColorName(c chess.Color) string {
	switch c {
	case chess.White:
		return "White"
	case chess.Black:
		return "Black"
	default:
		return "Nobody"
	}
}

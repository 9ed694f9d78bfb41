package gui

import (
	"github.com/notnil/chess"

	"github.com/qnkhuat/clickchess/pkg/rules"
)

const (
	numOfSquaresInRow = 8
	labelWidth        = 2 // rank labels left of the board
	labelHeight       = 2 // turn label above the board
)

// Layout places the board on the screen. Terminal cells are the pixels:
// each square is SquareWidth by SquareHeight cells, and rank 1 is drawn at
// the bottom.
type Layout struct {
	Left, Top                 int
	SquareWidth, SquareHeight int
}

// DefaultLayout keeps squares roughly square in most terminal fonts and
// large enough to hit with a mouse.
var DefaultLayout = Layout{Left: 2, Top: 1, SquareWidth: 4, SquareHeight: 2}

// At returns the same layout moved to x, y.
func (l Layout) At(x, y int) Layout {
	l.Left, l.Top = x, y
	return l
}

func (l Layout) boardLeft() int {
	return l.Left + labelWidth
}

func (l Layout) boardTop() int {
	return l.Top + labelHeight
}

func (l Layout) boardWidth() int {
	return numOfSquaresInRow * l.SquareWidth
}

func (l Layout) boardHeight() int {
	return numOfSquaresInRow * l.SquareHeight
}

// Width and Height are the cells used by the board with its labels.
func (l Layout) Width() int {
	return labelWidth + l.boardWidth()
}

func (l Layout) Height() int {
	return labelHeight + l.boardHeight() + 1
}

// Origin is the top left cell of sq.
func (l Layout) Origin(sq chess.Square) (x, y int) {
	col := int(sq.File())
	row := numOfSquaresInRow - 1 - int(sq.Rank())
	return l.boardLeft() + col*l.SquareWidth, l.boardTop() + row*l.SquareHeight
}

// SquareAt maps a screen cell to the square drawn there. Cells off the
// board report false.
func (l Layout) SquareAt(x, y int) (chess.Square, bool) {
	if x < l.boardLeft() || y < l.boardTop() {
		return chess.NoSquare, false
	}
	col := (x - l.boardLeft()) / l.SquareWidth
	row := (y - l.boardTop()) / l.SquareHeight
	if col >= numOfSquaresInRow || row >= numOfSquaresInRow {
		return chess.NoSquare, false
	}
	return rules.Square(chess.File(col), chess.Rank(numOfSquaresInRow-1-row)), true
}

package gui

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"

	"github.com/qnkhuat/clickchess/pkg/rules"
)

const (
	sidePanelGap   = 4
	moveBoxWidth   = 23
	restartMessage = "Press 'r' to play again."
)

// View is everything the renderer needs from a match, copied out so that
// drawing never touches live game state.
type View struct {
	Pieces       map[chess.Square]chess.Piece
	Turn         chess.Color
	Selected     chess.Square // chess.NoSquare when nothing is selected
	Destinations []chess.Square
	LastMove     []chess.Square
	Check        bool
	Thinking     bool
	Outcome      string // empty while the game is running
	Moves        []string
	Material     int
	Status       string
	WhiteName    string
	BlackName    string
	WhiteClock   string
	BlackClock   string
}

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range []rune(text) {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawRune places a rune at the specified coordinates with the provided style
func drawRune(s tcell.Screen, x, y int, style tcell.Style, r rune) {
	s.SetContent(x, y, r, nil, style)
}

// fillRect paints a w by h block of background
func fillRect(s tcell.Screen, x, y, w, h int, bg tcell.Color) {
	style := tcell.StyleDefault.Background(bg)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			s.SetContent(x+dx, y+dy, ' ', nil, style)
		}
	}
}

// stylePiece applies the theme's style to a piece based upon its color
func stylePiece(p chess.Piece, sqBg tcell.Color, t Theme) tcell.Style {
	pieceStyle := tcell.StyleDefault.Background(sqBg)

	if p.Color() == chess.White {
		return pieceStyle.Foreground(t.White)
	}
	return pieceStyle.Foreground(t.Black)
}

// squareBg returns the theme's color corresponding to the square
func squareBg(sq chess.Square, t Theme) tcell.Color {
	// a1 is a dark square
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return t.SquareDark
	}
	return t.SquareLight
}

func contains(squares []chess.Square, sq chess.Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

// drawSquare draws a board square and its corresponding piece
func drawSquare(s tcell.Screen, l Layout, sq chess.Square, p chess.Piece, sqBg tcell.Color, dest bool, t Theme) {
	x, y := l.Origin(sq)
	fillRect(s, x, y, l.SquareWidth, l.SquareHeight, sqBg)

	cx := x + (l.SquareWidth-1)/2
	cy := y + (l.SquareHeight-1)/2
	if p == chess.NoPiece {
		if dest {
			drawRune(s, cx, cy, tcell.StyleDefault.Background(sqBg).Foreground(t.SquareDest), '•')
		}
		return
	}
	piece, _ := utf8.DecodeRuneInString(p.String())
	drawRune(s, cx, cy, stylePiece(p, sqBg, t), piece)
}

// drawMoveLabel displays whose move it is above the board
func drawMoveLabel(s tcell.Screen, l Layout, v View, t Theme) {
	var label string
	switch {
	case v.Outcome != "":
		label = " Game over "
	case v.Thinking:
		label = " Computer is thinking... "
	case v.Turn == chess.Black:
		label = " Black to Move "
	default:
		label = " White to Move "
	}
	// Clear the previous label, which may have been longer
	drawText(s, l.boardLeft(), l.Top, tcell.StyleDefault, fmt.Sprintf("%-26s", ""))
	labelStyle := tcell.StyleDefault.Background(t.MoveLabelBg).Foreground(t.MoveLabelFg)
	drawText(s, l.boardLeft(), l.Top, labelStyle, label)
}

// drawBoard draws the squares with ranks on the left and files below
func drawBoard(s tcell.Screen, l Layout, v View, t Theme) {
	rankStyle := tcell.StyleDefault.Foreground(t.Rank)
	for r := chess.Rank(7); r >= 0; r-- {
		_, y := l.Origin(rules.Square(0, r))
		drawRune(s, l.Left, y+(l.SquareHeight-1)/2, rankStyle, rune('1'+r))

		for f := 0; f < numOfSquaresInRow; f++ {
			sq := rules.Square(chess.File(f), r)
			p := v.Pieces[sq]
			sqBg := squareBg(sq, t)

			if contains(v.LastMove, sq) {
				sqBg = t.SquareHigh
			}
			dest := contains(v.Destinations, sq)
			if dest && p != chess.NoPiece {
				sqBg = t.SquareDest
			}
			if sq == v.Selected {
				sqBg = t.SquareSelected
			}
			if v.Check && p.Type() == chess.King && p.Color() == v.Turn {
				sqBg = t.SquareCheck
			}
			drawSquare(s, l, sq, p, sqBg, dest, t)
		}
	}

	fileStyle := tcell.StyleDefault.Foreground(t.File)
	y := l.boardTop() + l.boardHeight()
	for f := 0; f < numOfSquaresInRow; f++ {
		x, _ := l.Origin(rules.Square(chess.File(f), 0))
		drawRune(s, x+(l.SquareWidth-1)/2, y, fileStyle, rune('a'+f))
	}
}

func (l Layout) sidePanelLeft() int {
	return l.boardLeft() + l.boardWidth() + sidePanelGap
}

// drawPlayers displays the names of the players and their clocks
func drawPlayers(s tcell.Screen, l Layout, v View, t Theme) {
	nameStyle := tcell.StyleDefault.Foreground(t.PlayerNames)
	x := l.sidePanelLeft()
	black := fmt.Sprintf("● %-16s %6s", v.BlackName, v.BlackClock)
	drawText(s, x, l.boardTop(), nameStyle, black)
	white := fmt.Sprintf("○ %-16s %6s", v.WhiteName, v.WhiteClock)
	drawText(s, x, l.boardTop()+l.boardHeight()-1, nameStyle, white)
}

// gameMove is used to store intermediate data in moveRows
type gameMove = struct {
	index string
	white string
	black string
}

// moveRows pairs up the moves and keeps the most recent n pairs
func moveRows(moves []string, n int) []gameMove {
	gameMoves := make([]gameMove, 0, len(moves)/2+1)
	var gm gameMove
	for i, txt := range moves {
		// On even indices, write the white move / index
		if i%2 == 0 {
			gm = gameMove{index: fmt.Sprintf("%v.", (i/2)+1), white: txt}
			if i == len(moves)-1 {
				gameMoves = append(gameMoves, gm)
			}
			// Every odd index, terminates a move pair
		} else {
			gm.black = txt
			gameMoves = append(gameMoves, gm)
		}
	}
	if len(gameMoves) > n {
		gameMoves = gameMoves[len(gameMoves)-n:]
	}
	return gameMoves
}

// drawMoves displays recent moves
func drawMoves(s tcell.Screen, l Layout, v View, t Theme) {
	x := l.sidePanelLeft()
	top := l.boardTop() + 2
	rows := l.boardHeight() - 7
	if rows < 1 {
		rows = 1
	}
	boxStyle := tcell.StyleDefault.Foreground(t.MoveBox)
	drawText(s, x, top, boxStyle, "┏━━━━━━━━━━━━━━━━━━━━━┓")
	moves := moveRows(v.Moves, rows)
	for i := 0; i < rows; i++ {
		var m gameMove
		if i < len(moves) {
			m = moves[i]
		}
		row := fmt.Sprintf("┃ %-4v %-7v %-7v┃", m.index, m.white, m.black)
		drawText(s, x, top+i+1, boxStyle, row)
	}
	drawText(s, x, top+rows+1, boxStyle, "┗━━━━━━━━━━━━━━━━━━━━━┛")
}

// drawScore displays the material balance under the move box
func drawScore(s tcell.Screen, l Layout, v View, t Theme) {
	scoreStyle := tcell.StyleDefault.Foreground(t.Score)
	text := fmt.Sprintf("material %+d", v.Material)
	drawText(s, l.sidePanelLeft(), l.boardTop()+l.boardHeight()-3, scoreStyle, fmt.Sprintf("%-*s", moveBoxWidth, text))
}

// DrawMsgLabel displays the status message under the board
func DrawMsgLabel(s tcell.Screen, l Layout, msg string, t Theme) {
	y := l.boardTop() + l.boardHeight() + 2
	labelStyle := tcell.StyleDefault.Foreground(t.Msg)
	drawText(s, l.boardLeft(), y, labelStyle, fmt.Sprintf("%-*s", l.boardWidth(), msg))
}

// drawOutcome covers the middle of the board with the result
func drawOutcome(s tcell.Screen, l Layout, outcome string, t Theme) {
	y := l.boardTop() + l.boardHeight()/2 - 2
	fillRect(s, l.boardLeft(), y, l.boardWidth(), 4, t.OverlayBg)

	style := tcell.StyleDefault.Background(t.OverlayBg).Foreground(t.OverlayFg)
	for i, text := range []string{outcome, restartMessage} {
		x := l.boardLeft() + (l.boardWidth()-utf8.RuneCountInString(text))/2
		if x < l.Left {
			x = l.Left
		}
		drawText(s, x, y+1+i*2, style, text)
	}
}

// Render draws the whole board view. The caller shows the screen.
func Render(s tcell.Screen, l Layout, t Theme, v View) {
	drawMoveLabel(s, l, v, t)
	drawBoard(s, l, v, t)
	drawPlayers(s, l, v, t)
	drawMoves(s, l, v, t)
	drawScore(s, l, v, t)
	DrawMsgLabel(s, l, v.Status, t)
	if v.Outcome != "" {
		drawOutcome(s, l, v.Outcome, t)
	}
}

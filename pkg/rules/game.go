package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

const (
	seventyFiveMoveClock = 150
	fivefoldCount        = 5
)

// Game is an Oracle backed by notnil/chess positions. Positions are
// immutable, so applying a move pushes a new one and undo pops it.
type Game struct {
	positions []*chess.Position
	moves     []*chess.Move
	keys      []string // repetition key of each position
	rootCheck bool
}

// NewGame returns a board in the standard starting position.
func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

// GameFromFEN returns a board set up from a FEN string.
func GameFromFEN(gamefen string) (*Game, error) {
	fen, err := chess.FEN(gamefen)
	if err != nil {
		return nil, fmt.Errorf("rules: parse fen %q: %w", gamefen, err)
	}
	pos := chess.NewGame(fen).Position()
	return &Game{
		positions: []*chess.Position{pos},
		keys:      []string{positionKey(pos)},
		rootCheck: sideToMoveInCheck(pos),
	}, nil
}

// Position is the current notnil/chess position.
func (g *Game) Position() *chess.Position {
	return g.positions[len(g.positions)-1]
}

func (g *Game) Reset() {
	pos := chess.StartingPosition()
	g.positions = []*chess.Position{pos}
	g.moves = nil
	g.keys = []string{positionKey(pos)}
	g.rootCheck = false
}

func (g *Game) Clone() Oracle {
	c := &Game{
		positions: make([]*chess.Position, len(g.positions)),
		moves:     make([]*chess.Move, len(g.moves)),
		keys:      make([]string, len(g.keys)),
		rootCheck: g.rootCheck,
	}
	copy(c.positions, g.positions)
	copy(c.moves, g.moves)
	copy(c.keys, g.keys)
	return c
}

func (g *Game) LegalMoves() []Move {
	valid := g.Position().ValidMoves()
	moves := make([]Move, 0, len(valid))
	for _, m := range valid {
		moves = append(moves, fromChess(m))
	}
	return moves
}

// resolve finds the library move matching m, which carries the tags
// (castle, en passant, check) that Position.Update relies on.
func (g *Game) resolve(m Move) *chess.Move {
	for _, vm := range g.Position().ValidMoves() {
		if vm.S1() == m.From && vm.S2() == m.To && vm.Promo() == m.Promo {
			return vm
		}
	}
	return nil
}

func (g *Game) IsLegal(m Move) bool {
	return g.resolve(m) != nil
}

func (g *Game) Apply(m Move) error {
	if _, over := g.Outcome(); over {
		return fmt.Errorf("%w: cannot play %s", ErrGameOver, m)
	}
	cm := g.resolve(m)
	if cm == nil {
		return fmt.Errorf("%w: %s in %s", ErrIllegalMove, m, g.FEN())
	}
	pos := g.Position().Update(cm)
	g.positions = append(g.positions, pos)
	g.moves = append(g.moves, cm)
	g.keys = append(g.keys, positionKey(pos))
	return nil
}

func (g *Game) UndoLast() error {
	if len(g.moves) == 0 {
		return ErrNoHistory
	}
	g.positions = g.positions[:len(g.positions)-1]
	g.moves = g.moves[:len(g.moves)-1]
	g.keys = g.keys[:len(g.keys)-1]
	return nil
}

func (g *Game) IsCapture(m Move) bool {
	cm := g.resolve(m)
	return cm != nil && (cm.HasTag(chess.Capture) || cm.HasTag(chess.EnPassant))
}

// InCheck reports whether the side to move is in check. The library tags
// checking moves, so this reads the tag of the last move. A position loaded
// from FEN has no last move and is examined directly.
func (g *Game) InCheck() bool {
	if n := len(g.moves); n > 0 {
		return g.moves[n-1].HasTag(chess.Check)
	}
	return g.rootCheck
}

func (g *Game) IsGameOver() bool {
	_, over := g.Outcome()
	return over
}

// Outcome reports the automatic terminations: checkmate, insufficient
// material, stalemate, the seventy-five-move rule and fivefold repetition.
func (g *Game) Outcome() (Outcome, bool) {
	pos := g.Position()
	status := pos.Status()
	if status == chess.Checkmate {
		return Outcome{Winner: pos.Turn().Other(), Termination: Checkmate}, true
	}
	if insufficientMaterial(pos.Board().SquareMap()) {
		return Outcome{Winner: chess.NoColor, Termination: InsufficientMaterial}, true
	}
	if status == chess.Stalemate {
		return Outcome{Winner: chess.NoColor, Termination: Stalemate}, true
	}
	if halfMoveClock(pos) >= seventyFiveMoveClock {
		return Outcome{Winner: chess.NoColor, Termination: SeventyFiveMoves}, true
	}
	if g.repetitions() >= fivefoldCount {
		return Outcome{Winner: chess.NoColor, Termination: FivefoldRepetition}, true
	}
	return Outcome{}, false
}

// repetitions counts how often the current position has occurred.
func (g *Game) repetitions() int {
	key := g.keys[len(g.keys)-1]
	n := 0
	for _, k := range g.keys {
		if k == key {
			n++
		}
	}
	return n
}

func (g *Game) Turn() chess.Color {
	return g.Position().Turn()
}

func (g *Game) PieceAt(sq chess.Square) chess.Piece {
	return g.Position().Board().Piece(sq)
}

func (g *Game) SquareMap() map[chess.Square]chess.Piece {
	return g.Position().Board().SquareMap()
}

func (g *Game) FEN() string {
	return g.Position().String()
}

// SAN returns m in standard algebraic notation for the current position,
// or the UCI form if m is not legal here.
func (g *Game) SAN(m Move) string {
	cm := g.resolve(m)
	if cm == nil {
		return m.String()
	}
	return chess.AlgebraicNotation{}.Encode(g.Position(), cm)
}

// History lists the moves played so far in standard algebraic notation.
func (g *Game) History() []string {
	history := make([]string, 0, len(g.moves))
	for i, m := range g.moves {
		history = append(history, chess.AlgebraicNotation{}.Encode(g.positions[i], m))
	}
	return history
}

func (g *Game) LastMove() (Move, bool) {
	if len(g.moves) == 0 {
		return Move{}, false
	}
	return fromChess(g.moves[len(g.moves)-1]), true
}

func fromChess(m *chess.Move) Move {
	return Move{From: m.S1(), To: m.S2(), Promo: m.Promo()}
}

// positionKey is the placement, side to move, castling and en passant
// fields of the FEN; the clocks do not count for repetition. The en passant
// square only counts when an en passant capture is actually legal.
func positionKey(pos *chess.Position) string {
	fields := strings.Fields(pos.String())
	if len(fields) > 4 {
		fields = fields[:4]
	}
	if len(fields) == 4 && fields[3] != "-" && !hasEnPassant(pos) {
		fields[3] = "-"
	}
	return strings.Join(fields, " ")
}

func hasEnPassant(pos *chess.Position) bool {
	for _, m := range pos.ValidMoves() {
		if m.HasTag(chess.EnPassant) {
			return true
		}
	}
	return false
}

// sideToMoveInCheck hands the move to the other side and looks for a move
// onto the king of the side that really has the move. The other king is
// lifted off the board so pinned attackers still count.
func sideToMoveInCheck(pos *chess.Position) bool {
	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return false
	}
	turn := pos.Turn()
	king := chess.NoSquare
	pieces := map[chess.Square]chess.Piece{}
	for sq, p := range pos.Board().SquareMap() {
		if p.Type() == chess.King {
			if p.Color() != turn {
				continue
			}
			king = sq
		}
		pieces[sq] = p
	}
	fields[0] = chess.NewBoard(pieces).String()
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[2], fields[3] = "-", "-"
	fen, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return false
	}
	flipped := chess.NewGame(fen).Position()

	for _, m := range flipped.ValidMoves() {
		if m.S2() == king {
			return true
		}
	}
	return false
}

func halfMoveClock(pos *chess.Position) int {
	fields := strings.Fields(pos.String())
	if len(fields) < 5 {
		return 0
	}
	n, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0
	}
	return n
}

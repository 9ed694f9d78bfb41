package rules

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/notnil/chess"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func mustGame(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := GameFromFEN(fen)
	if err != nil {
		t.Fatalf("failed to load %q: %s", fen, err)
	}
	return g
}

func play(t *testing.T, o Oracle, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("failed to parse %s: %s", s, err)
		}
		if err := o.Apply(m); err != nil {
			t.Fatalf("failed to apply %s: %s", s, err)
		}
	}
}

func sortedMoves(o Oracle) []string {
	var moves []string
	for _, m := range o.LegalMoves() {
		moves = append(moves, m.String())
	}
	sort.Strings(moves)
	return moves
}

func TestNewGame(t *testing.T) {
	g := NewGame()
	if g.FEN() != startFEN {
		t.Errorf("unexpected start position %q", g.FEN())
	}
	if n := len(g.LegalMoves()); n != 20 {
		t.Errorf("expected 20 legal moves, got %d", n)
	}
	if g.Turn() != chess.White {
		t.Errorf("expected white to move")
	}
	if _, ok := g.LastMove(); ok {
		t.Errorf("fresh game should have no last move")
	}
}

func TestApplyUndoRestores(t *testing.T) {
	// Covers captures, castling, en passant and promotion.
	lines := [][]string{
		{"e2e4", "d7d5", "e4d5", "d8d5", "b1c3", "d5a5"},
		{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6", "e1g1"},
		{"e2e4", "a7a6", "e4e5", "d7d5", "e5d6"},
		{"h2h4", "g7g5", "h4g5", "h7h6", "g5h6", "f8g7", "h6g7", "a7a6", "g7h8q"},
	}
	for _, line := range lines {
		g := NewGame()
		var fens []string
		var legal [][]string
		for _, s := range line {
			fens = append(fens, g.FEN())
			legal = append(legal, sortedMoves(g))
			play(t, g, s)
		}
		for i := len(line) - 1; i >= 0; i-- {
			if err := g.UndoLast(); err != nil {
				t.Fatalf("undo %s failed: %s", line[i], err)
			}
			if g.FEN() != fens[i] {
				t.Errorf("undo %s: expected %q, got %q", line[i], fens[i], g.FEN())
			}
			if got := sortedMoves(g); !reflect.DeepEqual(got, legal[i]) {
				t.Errorf("undo %s: legal moves differ", line[i])
			}
		}
		if err := g.UndoLast(); !errors.Is(err, ErrNoHistory) {
			t.Errorf("expected ErrNoHistory, got %v", err)
		}
	}
}

func TestApplyIllegal(t *testing.T) {
	g := NewGame()
	m, _ := ParseMove("e2e5")
	if g.IsLegal(m) {
		t.Errorf("e2e5 should not be legal")
	}
	if err := g.Apply(m); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("expected ErrIllegalMove, got %v", err)
	}
	if g.FEN() != startFEN {
		t.Errorf("illegal move changed the board")
	}
}

func TestPromotionNeedsPiece(t *testing.T) {
	g := mustGame(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	bare, _ := ParseMove("a7a8")
	if g.IsLegal(bare) {
		t.Errorf("promotion without a piece should not be legal")
	}
	queen, _ := ParseMove("a7a8q")
	if err := g.Apply(queen); err != nil {
		t.Fatalf("failed to promote: %s", err)
	}
	if p := g.PieceAt(chess.A8); p != chess.WhiteQueen {
		t.Errorf("expected white queen on a8, got %v", p)
	}
}

func TestIsCapture(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "d7d5")
	capture, _ := ParseMove("e4d5")
	quiet, _ := ParseMove("e4e5")
	if !g.IsCapture(capture) {
		t.Errorf("exd5 should be a capture")
	}
	if g.IsCapture(quiet) {
		t.Errorf("e5 should not be a capture")
	}

	g = NewGame()
	play(t, g, "e2e4", "a7a6", "e4e5", "d7d5")
	ep, _ := ParseMove("e5d6")
	if !g.IsCapture(ep) {
		t.Errorf("en passant should count as a capture")
	}
}

func TestInCheck(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "f7f6", "d2d4", "g7g5")
	if g.InCheck() {
		t.Errorf("black did not give check")
	}
	play(t, g, "d1h5")
	if !g.InCheck() {
		t.Errorf("Qh5 should give check")
	}
}

func TestInCheckFromFEN(t *testing.T) {
	tests := []struct {
		fen   string
		check bool
	}{
		{"4k3/8/8/8/8/8/4q3/4K3 w - - 0 1", true},
		{"4k3/8/8/8/8/8/3q4/4K3 w - - 0 1", true},
		{"4k3/8/8/8/1b6/8/8/4K3 w - - 0 1", true},
		{"4k3/8/8/8/5n2/8/8/4K3 w - - 0 1", false},
		{"3rk3/8/3N4/8/8/8/8/3K4 b - - 0 1", true},
		{"4k3/8/8/8/8/8/8/R3K3 b - - 0 1", false},
		{"4k3/8/8/8/8/8/8/4K2R b - - 0 1", false},
		{"4k3/8/8/8/8/8/8/4R1K1 b - - 0 1", true},
		{startFEN, false},
	}
	for _, tt := range tests {
		g := mustGame(t, tt.fen)
		if g.InCheck() != tt.check {
			t.Errorf("%s: expected check=%v", tt.fen, tt.check)
		}
		if c := g.Clone(); c.InCheck() != tt.check {
			t.Errorf("%s: clone lost the check", tt.fen)
		}
	}
}

func TestHistory(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "e7e5", "g1f3")
	want := []string{"e4", "e5", "Nf3"}
	if got := g.History(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	m, _ := ParseMove("b8c6")
	if san := g.SAN(m); san != "Nc6" {
		t.Errorf("expected Nc6, got %s", san)
	}
	last, ok := g.LastMove()
	if !ok || last.String() != "g1f3" {
		t.Errorf("unexpected last move %v", last)
	}
}

func TestClone(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4")
	c := g.Clone()
	play(t, c, "e7e5", "g1f3")
	if g.FEN() == c.FEN() {
		t.Errorf("clone shares state with the original")
	}
	if len(g.History()) != 1 {
		t.Errorf("original history changed: %v", g.History())
	}
	if err := c.UndoLast(); err != nil {
		t.Fatal(err)
	}
	if err := c.UndoLast(); err != nil {
		t.Fatal(err)
	}
	if g.FEN() != c.FEN() {
		t.Errorf("clone did not undo back to the original")
	}
}

func TestReset(t *testing.T) {
	g := mustGame(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	play(t, g, "a7a8q")
	g.Reset()
	if g.FEN() != startFEN {
		t.Errorf("reset should return to the standard start, got %q", g.FEN())
	}
	if len(g.History()) != 0 {
		t.Errorf("reset should clear history")
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
		err  bool
	}{
		{in: "e2e4", want: Move{From: chess.E2, To: chess.E4}},
		{in: "A7A8Q", want: Move{From: chess.A7, To: chess.A8, Promo: chess.Queen}},
		{in: "h2h1n", want: Move{From: chess.H2, To: chess.H1, Promo: chess.Knight}},
		{in: "e2", err: true},
		{in: "i2i4", err: true},
		{in: "e7e8k", err: true},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if tt.err {
			if !errors.Is(err, ErrBadMove) {
				t.Errorf("%s: expected ErrBadMove, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %s", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.in, tt.want, got)
		}
	}
}

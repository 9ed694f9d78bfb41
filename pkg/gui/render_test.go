package gui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
)

func newTestScreen(t testing.TB) tcell.SimulationScreen {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init screen: %s", err)
	}
	s.SetSize(100, 30)
	return s
}

func startView() View {
	return View{
		Pieces:     chess.StartingPosition().Board().SquareMap(),
		Turn:       chess.White,
		Selected:   chess.NoSquare,
		WhiteName:  "White (Human)",
		BlackName:  "Black (Computer)",
		WhiteClock: "0:00",
		BlackClock: "0:00",
	}
}

func cellAt(s tcell.SimulationScreen, l Layout, sq chess.Square) (rune, tcell.Color) {
	x, y := l.Origin(sq)
	r, _, style, _ := s.GetContent(x+(l.SquareWidth-1)/2, y+(l.SquareHeight-1)/2)
	_, bg, _ := style.Decompose()
	return r, bg
}

func rowText(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(s tcell.SimulationScreen) string {
	_, h := s.Size()
	var rows []string
	for y := 0; y < h; y++ {
		rows = append(rows, rowText(s, y))
	}
	return strings.Join(rows, "\n")
}

func glyph(p chess.Piece) rune {
	r, _ := utf8.DecodeRuneInString(p.String())
	return r
}

func TestRenderPieces(t *testing.T) {
	s := newTestScreen(t)
	defer s.Fini()

	l := DefaultLayout
	Render(s, l, ThemeBasic, startView())

	tests := []struct {
		sq chess.Square
		p  chess.Piece
	}{
		{chess.E1, chess.WhiteKing},
		{chess.D8, chess.BlackQueen},
		{chess.E2, chess.WhitePawn},
		{chess.G8, chess.BlackKnight},
	}
	for _, tt := range tests {
		if r, _ := cellAt(s, l, tt.sq); r != glyph(tt.p) {
			t.Errorf("expected %c on %s, got %c", glyph(tt.p), tt.sq, r)
		}
	}
	if r, bg := cellAt(s, l, chess.E4); r != ' ' || bg != ThemeBasic.SquareLight {
		t.Errorf("e4 should be an empty light square, got %q %v", r, bg)
	}
	if r, bg := cellAt(s, l, chess.A1); r != glyph(chess.WhiteRook) || bg != ThemeBasic.SquareDark {
		t.Errorf("a1 should be a dark square with a rook, got %q %v", r, bg)
	}
	if !strings.Contains(screenText(s), "White to Move") {
		t.Errorf("missing turn label")
	}
}

func TestRenderSelection(t *testing.T) {
	s := newTestScreen(t)
	defer s.Fini()

	l := DefaultLayout
	v := startView()
	v.Selected = chess.E2
	v.Destinations = []chess.Square{chess.E3, chess.E4}
	Render(s, l, ThemeBasic, v)

	if _, bg := cellAt(s, l, chess.E2); bg != ThemeBasic.SquareSelected {
		t.Errorf("selected square not highlighted")
	}
	for _, sq := range v.Destinations {
		if r, _ := cellAt(s, l, sq); r != '•' {
			t.Errorf("expected a destination marker on %s, got %q", sq, r)
		}
	}
	if r, _ := cellAt(s, l, chess.E5); r == '•' {
		t.Errorf("e5 is not a destination")
	}
}

func TestRenderOutcome(t *testing.T) {
	s := newTestScreen(t)
	defer s.Fini()

	v := startView()
	v.Outcome = "Black wins by checkmate!"
	v.Moves = []string{"f3", "e5", "g4", "Qh4#"}
	Render(s, DefaultLayout, ThemeBasic, v)

	text := screenText(s)
	for _, want := range []string{v.Outcome, restartMessage, "Game over", "Qh4#", "2."} {
		if !strings.Contains(text, want) {
			t.Errorf("screen is missing %q", want)
		}
	}
}

func TestMoveRows(t *testing.T) {
	moves := []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}
	rows := moveRows(moves, 10)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[2].index != "3." || rows[2].white != "Bb5" || rows[2].black != "" {
		t.Errorf("unexpected last row %+v", rows[2])
	}

	rows = moveRows(moves, 2)
	if len(rows) != 2 || rows[0].index != "2." {
		t.Errorf("expected the two most recent rows, got %+v", rows)
	}
}

func BenchmarkRender(b *testing.B) {
	s := newTestScreen(b)
	defer s.Fini()

	v := startView()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Render(s, DefaultLayout, ThemeBasic, v)
	}
}

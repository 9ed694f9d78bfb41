package gui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Terminal safe color palette is available here
// Themes should be limited to the colors defined in this reference
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name           string
	MoveLabelBg    tcell.Color
	MoveLabelFg    tcell.Color
	SquareDark     tcell.Color
	SquareLight    tcell.Color
	SquareHigh     tcell.Color
	SquareSelected tcell.Color
	SquareDest     tcell.Color
	SquareCheck    tcell.Color
	White          tcell.Color
	Black          tcell.Color
	Msg            tcell.Color
	Rank           tcell.Color
	File           tcell.Color
	PlayerNames    tcell.Color
	Score          tcell.Color
	MoveBox        tcell.Color
	OverlayBg      tcell.Color
	OverlayFg      tcell.Color
}

// ThemeHex is the form a Theme takes in the config file
type ThemeHex struct {
	Name           string `yaml:"name" json:"name"`
	MoveLabelBg    string `yaml:"moveLabelBg" json:"moveLabelBg"`
	MoveLabelFg    string `yaml:"moveLabelFg" json:"moveLabelFg"`
	SquareDark     string `yaml:"squareDark" json:"squareDark"`
	SquareLight    string `yaml:"squareLight" json:"squareLight"`
	SquareHigh     string `yaml:"squareHigh" json:"squareHigh"`
	SquareSelected string `yaml:"squareSelected" json:"squareSelected"`
	SquareDest     string `yaml:"squareDest" json:"squareDest"`
	SquareCheck    string `yaml:"squareCheck" json:"squareCheck"`
	White          string `yaml:"white" json:"white"`
	Black          string `yaml:"black" json:"black"`
	Msg            string `yaml:"msg" json:"msg"`
	Rank           string `yaml:"rank" json:"rank"`
	File           string `yaml:"file" json:"file"`
	PlayerNames    string `yaml:"playerNames" json:"playerNames"`
	Score          string `yaml:"score" json:"score"`
	MoveBox        string `yaml:"moveBox" json:"moveBox"`
	OverlayBg      string `yaml:"overlayBg" json:"overlayBg"`
	OverlayFg      string `yaml:"overlayFg" json:"overlayFg"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.MoveLabelBg.Hex()),
		fmtHex(t.MoveLabelFg.Hex()),
		fmtHex(t.SquareDark.Hex()),
		fmtHex(t.SquareLight.Hex()),
		fmtHex(t.SquareHigh.Hex()),
		fmtHex(t.SquareSelected.Hex()),
		fmtHex(t.SquareDest.Hex()),
		fmtHex(t.SquareCheck.Hex()),
		fmtHex(t.White.Hex()),
		fmtHex(t.Black.Hex()),
		fmtHex(t.Msg.Hex()),
		fmtHex(t.Rank.Hex()),
		fmtHex(t.File.Hex()),
		fmtHex(t.PlayerNames.Hex()),
		fmtHex(t.Score.Hex()),
		fmtHex(t.MoveBox.Hex()),
		fmtHex(t.OverlayBg.Hex()),
		fmtHex(t.OverlayFg.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.MoveLabelBg),
		tcell.GetColor(t.MoveLabelFg),
		tcell.GetColor(t.SquareDark),
		tcell.GetColor(t.SquareLight),
		tcell.GetColor(t.SquareHigh),
		tcell.GetColor(t.SquareSelected),
		tcell.GetColor(t.SquareDest),
		tcell.GetColor(t.SquareCheck),
		tcell.GetColor(t.White),
		tcell.GetColor(t.Black),
		tcell.GetColor(t.Msg),
		tcell.GetColor(t.Rank),
		tcell.GetColor(t.File),
		tcell.GetColor(t.PlayerNames),
		tcell.GetColor(t.Score),
		tcell.GetColor(t.MoveBox),
		tcell.GetColor(t.OverlayBg),
		tcell.GetColor(t.OverlayFg),
	}
}

var ErrNoTheme = errors.New("theme: no theme found")

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}

	return Theme{}, ErrNoTheme
}

// LookupTheme prefers a theme from the config over the built in ones.
func LookupTheme(want string, custom []ThemeHex) (Theme, error) {
	if t, err := ImportThemes(want, custom); err == nil {
		return t, nil
	}
	for _, t := range BuiltinThemes {
		if t.Name == want {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrNoTheme, want)
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",            // Name
	tcell.Color252,     // MoveLabelBg
	tcell.ColorBlack,   // MoveLabelFg
	tcell.Color188,     // SquareDark
	tcell.Color230,     // SquareLight
	tcell.Color226,     // SquareHigh
	tcell.Color228,     // SquareSelected
	tcell.Color120,     // SquareDest
	tcell.Color218,     // SquareCheck
	tcell.Color232,     // White
	tcell.Color232,     // Black
	tcell.Color160,     // Msg
	tcell.Color247,     // Rank
	tcell.Color247,     // File
	tcell.ColorDefault, // PlayerNames
	tcell.Color247,     // Score
	tcell.ColorDefault, // MoveBox
	tcell.Color235,     // OverlayBg
	tcell.Color255,     // OverlayFg
}

// ThemeWood uses the classic brown board colors
var ThemeWood = Theme{
	"wood",
	tcell.NewRGBColor(240, 217, 181),
	tcell.ColorBlack,
	tcell.NewRGBColor(181, 136, 99),
	tcell.NewRGBColor(240, 217, 181),
	tcell.NewRGBColor(205, 210, 106),
	tcell.NewRGBColor(255, 255, 0),
	tcell.NewRGBColor(100, 255, 100),
	tcell.NewRGBColor(235, 97, 80),
	tcell.ColorWhite,
	tcell.ColorBlack,
	tcell.Color160,
	tcell.Color247,
	tcell.Color247,
	tcell.ColorDefault,
	tcell.Color247,
	tcell.ColorDefault,
	tcell.ColorBlack,
	tcell.ColorWhite,
}

var BuiltinThemes = []Theme{ThemeBasic, ThemeWood}

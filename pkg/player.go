package pkg

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/qnkhuat/clickchess/pkg/rules"
)

type PlayerKind int

const (
	Human PlayerKind = iota
	Computer
)

func (pk PlayerKind) String() string {
	switch pk {
	case Human:
		return "Human"
	case Computer:
		return "Computer"
	default:
		return "Unknown"
	}
}

type Player struct {
	Name  string
	Kind  PlayerKind
	Color chess.Color
}

func (p Player) String() string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", rules.ColorName(p.Color), p.Kind)
}

// Players builds the two seats from the name of the side the computer
// plays: "white", "black", "both" or "none".
func Players(computer string) (white, black Player, err error) {
	white = Player{Kind: Human, Color: chess.White}
	black = Player{Kind: Human, Color: chess.Black}
	switch strings.ToLower(computer) {
	case "white":
		white.Kind = Computer
	case "black", "":
		black.Kind = Computer
	case "both":
		white.Kind = Computer
		black.Kind = Computer
	case "none":
	default:
		return white, black, fmt.Errorf("unknown computer side %q", computer)
	}
	return white, black, nil
}

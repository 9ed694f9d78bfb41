package pkg

// Action labels the things a player can do outside the board.
type Action string

const (
	ActionQuitPrompt Action = "Leave the game?"
	ActionQuitYes    Action = "Quit"
	ActionQuitNo     Action = "Keep playing"
	ActionHelp       Action = "click a piece, then a square   r: new game   q: quit"
)

// Labels converts actions for tview buttons.
func Labels(actions ...Action) []string {
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = string(a)
	}
	return labels
}

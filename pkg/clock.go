package pkg

import (
	"fmt"
	"time"

	"github.com/notnil/chess"
)

// Clock adds up the time each side spends on its moves.
type Clock struct {
	spent   map[chess.Color]time.Duration
	running chess.Color
	since   time.Time
	now     func() time.Time
}

func NewClock() *Clock {
	return &Clock{
		spent:   make(map[chess.Color]time.Duration),
		running: chess.NoColor,
		now:     time.Now,
	}
}

// Switch charges the running side and starts c's time.
func (cl *Clock) Switch(c chess.Color) {
	cl.Pause()
	cl.running = c
	cl.since = cl.now()
}

func (cl *Clock) Pause() {
	if cl.running != chess.NoColor {
		cl.spent[cl.running] += cl.now().Sub(cl.since)
	}
	cl.running = chess.NoColor
}

func (cl *Clock) Reset() {
	cl.spent = make(map[chess.Color]time.Duration)
	cl.running = chess.NoColor
}

// Spent is the total time used by c, including a move in progress.
func (cl *Clock) Spent(c chess.Color) time.Duration {
	d := cl.spent[c]
	if c == cl.running && c != chess.NoColor {
		d += cl.now().Sub(cl.since)
	}
	return d
}

func (cl *Clock) Format(c chess.Color) string {
	d := cl.Spent(c)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

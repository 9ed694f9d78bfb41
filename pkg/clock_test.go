package pkg

import (
	"testing"
	"time"

	"github.com/notnil/chess"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time {
	return f.t
}

func (f *fakeTime) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func TestClock(t *testing.T) {
	ft := &fakeTime{t: time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)}
	cl := NewClock()
	cl.now = ft.now

	cl.Switch(chess.White)
	ft.advance(3 * time.Second)
	if got := cl.Spent(chess.White); got != 3*time.Second {
		t.Errorf("running side should include the move in progress, got %s", got)
	}

	cl.Switch(chess.Black)
	ft.advance(75 * time.Second)
	cl.Switch(chess.White)
	ft.advance(2 * time.Second)
	cl.Pause()
	ft.advance(time.Hour)

	if got := cl.Spent(chess.White); got != 5*time.Second {
		t.Errorf("white spent %s, want 5s", got)
	}
	if got := cl.Spent(chess.Black); got != 75*time.Second {
		t.Errorf("black spent %s, want 75s", got)
	}
	if got := cl.Format(chess.Black); got != "1:15" {
		t.Errorf("unexpected format %q", got)
	}

	cl.Reset()
	if cl.Spent(chess.White) != 0 || cl.Format(chess.Black) != "0:00" {
		t.Errorf("reset did not clear the clock")
	}
}

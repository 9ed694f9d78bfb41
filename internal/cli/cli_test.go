package cli

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/qnkhuat/clickchess/pkg/ai"
)

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestSelfPlayGame(t *testing.T) {
	r := selfPlay(ai.NewSeededSelector(1), 60, quietLog())
	if r.Plies == 0 || r.Plies > 60 {
		t.Errorf("unexpected ply count %d", r.Plies)
	}
	if !r.Finished && r.Plies != 60 {
		t.Errorf("unfinished game stopped early at %d plies", r.Plies)
	}
}

func TestSelfPlayCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	root := Root()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{
		"selfplay",
		"--config", filepath.Join(t.TempDir(), "config.yaml"),
		"--games", "2",
		"--max-plies", "30",
		"--seed", "5",
	})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	text := out.String()
	for _, want := range []string{"game 1", "game 2", "unfinished"} {
		if !strings.Contains(text, want) {
			t.Errorf("output is missing %q:\n%s", want, text)
		}
	}
}

func TestSelfPlayRejectsBadFlags(t *testing.T) {
	root := Root()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"selfplay", "--config", filepath.Join(t.TempDir(), "c.yaml"), "--games", "0"})
	if err := root.Execute(); err == nil {
		t.Errorf("zero games should fail")
	}
}

func TestPlayNeedsTerminal(t *testing.T) {
	root := Root()
	root.SetArgs([]string{"play", "--config", filepath.Join(t.TempDir(), "c.yaml")})
	if err := root.Execute(); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("expected ErrNotTerminal under go test, got %v", err)
	}
}

func TestPlayFlagValidation(t *testing.T) {
	root := Root()
	root.SetArgs([]string{"play", "--config", filepath.Join(t.TempDir(), "c.yaml"), "--computer", "purple"})
	if err := root.Execute(); err == nil || errors.Is(err, ErrNotTerminal) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

package pkg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/qnkhuat/clickchess/pkg/rules"
)

// InitLog sends logrus output to the file at dest. The terminal belongs to
// the board, so nothing is logged to stderr while it runs.
func InitLog(dest string, level logrus.Level) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	logrus.SetLevel(level)
	return f, nil
}

// NewBoard returns the starting position, or the position in fen if given.
func NewBoard(fen string) (*rules.Game, error) {
	if fen == "" {
		return rules.NewGame(), nil
	}
	return rules.GameFromFEN(fen)
}

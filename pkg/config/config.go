// Package config reads the chessterm settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/qnkhuat/clickchess/pkg/gui"
)

const (
	FilePermissions = 0o644
	DirPermissions  = 0o755

	relPath = "chessterm/config.yaml"
)

var ErrInvalid = errors.New("config: invalid value")

type Server struct {
	Addr        string        `yaml:"addr"`
	HostKey     string        `yaml:"host-key"`
	IdleTimeout time.Duration `yaml:"idle-timeout"`
	// Command runs for each session. Empty means "<this binary> play".
	Command []string `yaml:"command,omitempty"`
}

type Config struct {
	// Computer is the side the computer plays: white, black, both or none.
	Computer  string        `yaml:"computer"`
	ThinkTime time.Duration `yaml:"think-time"`
	// Seed fixes the computer's choices. 0 seeds from the clock.
	Seed     int64          `yaml:"seed"`
	Sound    bool           `yaml:"sound"`
	Theme    string         `yaml:"theme"`
	Themes   []gui.ThemeHex `yaml:"themes,omitempty"`
	LogFile  string         `yaml:"log-file"`
	LogLevel string         `yaml:"log-level"`
	Server   Server         `yaml:"server"`
}

func Default() Config {
	return Config{
		Computer:  "black",
		ThinkTime: 500 * time.Millisecond,
		Sound:     true,
		Theme:     gui.ThemeBasic.Name,
		LogFile:   filepath.Join(xdg.CacheHome, "chessterm", "chessterm.log"),
		LogLevel:  "info",
		Server: Server{
			Addr:        ":2222",
			IdleTimeout: 5 * time.Minute,
		},
	}
}

// DefaultPath is the config file under the XDG config directory.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(relPath)
}

// TryCreate writes the default config to path if nothing is there yet.
func TryCreate(path string) error {
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return err
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, FilePermissions)
}

// Load reads the config at path, creating it with defaults first if it is
// missing. An empty path means DefaultPath. Fields left out of the file keep
// their defaults.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		path = p
	}
	if err := TryCreate(path); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	logrus.WithField("path", path).Debug("loaded config")
	return c, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Computer) {
	case "white", "black", "both", "none", "":
	default:
		return fmt.Errorf("%w: computer %q", ErrInvalid, c.Computer)
	}
	if c.ThinkTime < 0 {
		return fmt.Errorf("%w: think-time %s", ErrInvalid, c.ThinkTime)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	return nil
}

func (c Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// BoardTheme resolves Theme against the custom and builtin themes.
func (c Config) BoardTheme() (gui.Theme, error) {
	return gui.LookupTheme(c.Theme, c.Themes)
}

// Package config loads the editor settings from a TOML file
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnknownKey reports a config key that maps to no setting
var ErrUnknownKey = errors.New("unknown config key")

// Config holds user settings; zero-value fields are never read, use Default
type Config struct {
	AltScreen   bool              `toml:"alt_screen"`
	Depth       int               `toml:"depth"`
	DefaultFile string            `toml:"default_file"`
	SaveOnQuit  bool              `toml:"save_on_quit"`
	LogLevel    string            `toml:"log_level"`
	RootLabel   string            `toml:"root_label"`
	Keys        map[string]string `toml:"keys"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		AltScreen:  true,
		SaveOnQuit: true,
		LogLevel:   "info",
		RootLabel:  "todo",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/vi-todo/config.toml, falling back to ~/.config
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "vi-todo", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vi-todo", "config.toml")
}

// Load decodes path onto Default. A missing file yields the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), fmt.Errorf("config %s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}

	if cfg.Depth < 0 {
		return Default(), fmt.Errorf("config %s: depth must be >= 0, got %d", path, cfg.Depth)
	}

	return cfg, nil
}

// Write encodes cfg as TOML, used to print a starting config file
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

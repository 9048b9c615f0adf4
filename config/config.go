package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Theme   ThemeConfig   `toml:"theme"`
	Card    CardConfig    `toml:"card"`
	Editing EditingConfig `toml:"editing"`
	Logging LoggingConfig `toml:"logging"`
}

type ThemeConfig struct {
	Dark         bool `toml:"dark"`
	TransitionMS int  `toml:"transition_ms"`
}

type CardConfig struct {
	CollapsedHeight int `toml:"collapsed_height"`
	ExpandedHeight  int `toml:"expanded_height"`
	TransitionMS    int `toml:"transition_ms"`
}

type EditingConfig struct {
	HoldMS            int  `toml:"hold_ms"`
	CollapseOnCommit  bool `toml:"collapse_on_commit"`
	RejectEmptyCommit bool `toml:"reject_empty_commit"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty discards logs while the screen is open
}

func Default() Config {
	return Config{
		Theme: ThemeConfig{
			Dark:         false,
			TransitionMS: 500,
		},
		Card: CardConfig{
			CollapsedHeight: 70,
			ExpandedHeight:  155,
			TransitionMS:    300,
		},
		Editing: EditingConfig{
			HoldMS:            500,
			CollapseOnCommit:  true,
			RejectEmptyCommit: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load decodes the TOML file at path over defaults. A blank path, a missing
// file or an empty file yields defaults unchanged.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Theme.TransitionMS < 0 {
		return fmt.Errorf("theme.transition_ms must be >= 0, got %d", c.Theme.TransitionMS)
	}
	if c.Card.CollapsedHeight <= 0 {
		return fmt.Errorf("card.collapsed_height must be > 0, got %d", c.Card.CollapsedHeight)
	}
	if c.Card.ExpandedHeight < c.Card.CollapsedHeight {
		return fmt.Errorf("card.expanded_height (%d) must be >= card.collapsed_height (%d)", c.Card.ExpandedHeight, c.Card.CollapsedHeight)
	}
	if c.Card.TransitionMS < 0 {
		return fmt.Errorf("card.transition_ms must be >= 0, got %d", c.Card.TransitionMS)
	}
	if c.Editing.HoldMS <= 0 {
		return fmt.Errorf("editing.hold_ms must be > 0, got %d", c.Editing.HoldMS)
	}
	if _, err := log.ParseLevel(strings.TrimSpace(c.Logging.Level)); err != nil {
		return fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
	}
	return nil
}

// ThemeTransition returns the theme fade length.
func (c Config) ThemeTransition() time.Duration {
	return time.Duration(c.Theme.TransitionMS) * time.Millisecond
}

// CardTransition returns the card height animation length.
func (c Config) CardTransition() time.Duration {
	return time.Duration(c.Card.TransitionMS) * time.Millisecond
}

// HoldThreshold returns how long a press must last to start editing.
func (c Config) HoldThreshold() time.Duration {
	return time.Duration(c.Editing.HoldMS) * time.Millisecond
}

// Marshal renders c as TOML, used to print the effective configuration.
func Marshal(c Config) ([]byte, error) {
	return toml.Marshal(c)
}

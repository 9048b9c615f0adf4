package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, err := Load(path, Default())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("  ", Default())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[theme]
dark = true

[editing]
hold_ms = 800
collapse_on_commit = false

[logging]
level = "debug"
file = "/tmp/todo.log"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, Default())
	require.NoError(t, err)
	assert.True(t, cfg.Theme.Dark)
	assert.Equal(t, 500, cfg.Theme.TransitionMS, "unset keys keep defaults")
	assert.Equal(t, 800*time.Millisecond, cfg.HoldThreshold())
	assert.False(t, cfg.Editing.CollapseOnCommit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/todo.log", cfg.Logging.File)
	assert.Equal(t, 300*time.Millisecond, cfg.CardTransition())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad toml":          "[theme\n",
		"negative fade":     "[theme]\ntransition_ms = -1\n",
		"inverted heights":  "[card]\ncollapsed_height = 100\nexpanded_height = 50\n",
		"zero hold":         "[editing]\nhold_ms = 0\n",
		"unknown log level": "[logging]\nlevel = \"loud\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := Load(path, Default())
			assert.Error(t, err)
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Equal(t, 500*time.Millisecond, Default().ThemeTransition())
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "hold_ms"))

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	cfg, err := Load(path, Config{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

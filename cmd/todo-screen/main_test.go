package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-screen/tui"
)

type fakeProgram struct {
	model tea.Model
	err   error
}

func (p *fakeProgram) Run() (tea.Model, error) {
	return p.model, p.err
}

func stubProgram(t *testing.T, err error) *tea.Model {
	t.Helper()
	var got tea.Model
	prev := programFactory
	programFactory = func(m tea.Model) program {
		got = m
		return &fakeProgram{model: m, err: err}
	}
	t.Cleanup(func() { programFactory = prev })
	return &got
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--version"}, &out, nil))
	assert.Equal(t, "todo-screen dev\n", out.String())
}

func TestRunPrintConfigAppliesFlags(t *testing.T) {
	t.Setenv("TODO_SCREEN_CONFIG", "")
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--print-config", "--dark", "--log-level", "debug"}, &out, nil))
	assert.Contains(t, out.String(), "dark = true")
	assert.Contains(t, out.String(), "level = 'debug'")
}

func TestRunRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editing]\nhold_ms = -5\n"), 0o644))

	err := run(context.Background(), []string{"--config", path}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hold_ms")
}

func TestRunConfigFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[theme]\ndark = true\n"), 0o644))
	t.Setenv("TODO_SCREEN_CONFIG", path)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--print-config"}, &out, nil))
	assert.Contains(t, out.String(), "dark = true")
}

func TestRunStartsProgramAndLogsToFile(t *testing.T) {
	t.Setenv("TODO_SCREEN_CONFIG", "")
	got := stubProgram(t, nil)
	logPath := filepath.Join(t.TempDir(), "logs", "todo.log")
	var stderr bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"--log-file", logPath, "--log-level", "debug"}, nil, &stderr))
	_, ok := (*got).(*tui.Model)
	assert.True(t, ok, "program runs the screen model")
	assert.Empty(t, stderr.String(), "console stays quiet while the screen is up")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "starting tui program loop")
}

func TestRunReportsProgramError(t *testing.T) {
	t.Setenv("TODO_SCREEN_CONFIG", "")
	stubProgram(t, errors.New("no tty"))

	err := run(context.Background(), nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tty")
}

func TestRunRejectsArgs(t *testing.T) {
	assert.Error(t, run(context.Background(), []string{"extra"}, nil, nil))
}

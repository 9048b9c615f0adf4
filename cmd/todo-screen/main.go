package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	charmLog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"todo-screen/app"
	"todo-screen/config"
	"todo-screen/tui"
)

var version = "dev"

type program interface {
	Run() (tea.Model, error)
}

var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath  string
	dark        bool
	logLevel    string
	logFile     string
	showVersion bool
	printConfig bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	var f flags
	cmd := &cobra.Command{
		Use:           "todo-screen",
		Short:         "A single-screen to-do list for the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScreen(cmd, f, stdout, stderr)
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVar(&f.configPath, "config", "", "path to config TOML (env TODO_SCREEN_CONFIG)")
	cmd.Flags().BoolVar(&f.dark, "dark", false, "start in dark mode")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "write logs to this file")
	cmd.Flags().BoolVar(&f.showVersion, "version", false, "show version")
	cmd.Flags().BoolVar(&f.printConfig, "print-config", false, "print the effective config and exit")

	return cmd.ExecuteContext(ctx)
}

func runScreen(cmd *cobra.Command, f flags, stdout, stderr io.Writer) error {
	if f.showVersion {
		_, _ = fmt.Fprintf(stdout, "todo-screen %s\n", version)
		return nil
	}

	configPath := strings.TrimSpace(f.configPath)
	if configPath == "" {
		configPath = strings.TrimSpace(os.Getenv("TODO_SCREEN_CONFIG"))
	}
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return fmt.Errorf("load config %q: %w", configPath, err)
	}
	if cmd.Flags().Changed("dark") {
		cfg.Theme.Dark = f.dark
	}
	if lvl := strings.TrimSpace(f.logLevel); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if file := strings.TrimSpace(f.logFile); file != "" {
		cfg.Logging.File = file
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if f.printConfig {
		data, err := config.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		_, _ = stdout.Write(data)
		return nil
	}

	logger, err := newRuntimeLogger(stderr, cfg.Logging)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// Keep the screen clean: while the TUI is up only the file sink writes.
	logger.SetConsoleEnabled(false)
	defer func() {
		if closeErr := logger.Close(); closeErr != nil {
			_, _ = fmt.Fprintf(stderr, "warning: close log file: %v\n", closeErr)
		}
	}()

	logger.Info("configuration loaded", "config_path", configPath, "dark", cfg.Theme.Dark, "log_level", cfg.Logging.Level)

	screen := app.NewScreen(
		app.WithLogger(logger.Logger()),
		app.WithDarkMode(cfg.Theme.Dark),
		app.WithEditPolicy(app.EditPolicy{
			CollapseOnCommit:  cfg.Editing.CollapseOnCommit,
			RejectEmptyCommit: cfg.Editing.RejectEmptyCommit,
		}),
	)

	opts := tui.DefaultOptions()
	opts.Logger = logger.Logger()
	opts.ThemeTransition = cfg.ThemeTransition()
	opts.CardTransition = cfg.CardTransition()
	opts.HoldThreshold = cfg.HoldThreshold()
	opts.CollapsedHeight = float64(cfg.Card.CollapsedHeight)
	opts.ExpandedHeight = float64(cfg.Card.ExpandedHeight)

	logger.Info("starting tui program loop")
	if _, err := programFactory(tui.NewModel(screen, opts)).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui: %w", err)
	}
	logger.Info("tui program loop finished", "active", screen.List().Len(), "completed", len(screen.List().Completed()))
	return nil
}

// runtimeLogger fans log events to a styled console sink and an optional file sink.
type runtimeLogger struct {
	console        *charmLog.Logger
	file           *charmLog.Logger
	fanout         *charmLog.Logger
	consoleOut     io.Writer
	fileOut        io.Writer
	consoleEnabled bool
	closeFile      func() error
}

func newRuntimeLogger(stderr io.Writer, cfg config.LoggingConfig) (*runtimeLogger, error) {
	level, err := charmLog.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}
	if stderr == nil {
		stderr = io.Discard
	}

	l := &runtimeLogger{
		console: charmLog.NewWithOptions(stderr, charmLog.Options{
			Level:           level,
			Prefix:          "todo-screen",
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Formatter:       charmLog.TextFormatter,
		}),
		consoleOut:     stderr,
		consoleEnabled: true,
	}

	path := strings.TrimSpace(cfg.File)
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		fh, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = charmLog.NewWithOptions(fh, charmLog.Options{
			Level:           level,
			Prefix:          "todo-screen",
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Formatter:       charmLog.LogfmtFormatter,
		})
		l.fileOut = fh
		l.closeFile = fh.Close
	}

	l.fanout = charmLog.NewWithOptions(fanoutWriter{l}, charmLog.Options{
		Level:     level,
		Formatter: charmLog.LogfmtFormatter,
	})
	return l, nil
}

// Logger returns a single logger that writes to every enabled sink, for
// handing to packages that take a *log.Logger.
func (l *runtimeLogger) Logger() *charmLog.Logger {
	return l.fanout
}

func (l *runtimeLogger) SetConsoleEnabled(enabled bool) {
	l.consoleEnabled = enabled
}

func (l *runtimeLogger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	return l.closeFile()
}

func (l *runtimeLogger) sinks() []*charmLog.Logger {
	out := make([]*charmLog.Logger, 0, 2)
	if l.consoleEnabled {
		out = append(out, l.console)
	}
	if l.file != nil {
		out = append(out, l.file)
	}
	return out
}

func (l *runtimeLogger) Info(msg string, keyvals ...any) {
	for _, sink := range l.sinks() {
		sink.Info(msg, keyvals...)
	}
}

func (l *runtimeLogger) Error(msg string, keyvals ...any) {
	for _, sink := range l.sinks() {
		sink.Error(msg, keyvals...)
	}
}

func (l *runtimeLogger) writers() []io.Writer {
	out := make([]io.Writer, 0, 2)
	if l.consoleEnabled {
		out = append(out, l.consoleOut)
	}
	if l.fileOut != nil {
		out = append(out, l.fileOut)
	}
	return out
}

// fanoutWriter copies formatted lines from the shared logger to every
// enabled sink's writer.
type fanoutWriter struct {
	l *runtimeLogger
}

func (w fanoutWriter) Write(p []byte) (int, error) {
	for _, out := range w.l.writers() {
		if _, err := out.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

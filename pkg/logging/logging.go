// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DisableFile as Options.File keeps logs on the console only.
const DisableFile = "-"

// Options control where log output goes.
type Options struct {
	// Verbosity is the number of -v flags.
	Verbosity int
	// Console receives human readable output. Defaults to stderr.
	Console io.Writer
	// File receives JSON lines. Defaults to LogFilePath().
	File string
}

// LevelFor maps -v counts to levels: none WARN, -v INFO, -vv DEBUG, more TRACE.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures the global logger for the CLI. A log file that
// cannot be opened is reported and otherwise ignored.
func SetupLogger(verbosity int) {
	if err := Setup(Options{Verbosity: verbosity}); err != nil {
		log.Warn().Err(err).Msg("Logging to console only")
	}
}

// Setup installs the global logger described by opts. The console writer
// is always installed, even when the log file fails.
func Setup(opts Options) error {
	zerolog.SetGlobalLevel(LevelFor(opts.Verbosity))

	console := opts.Console
	noColor := true
	if console == nil {
		console = os.Stderr
		noColor = !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}}

	path := opts.File
	if path == "" {
		path = LogFilePath()
	}
	var fileErr error
	if path != DisableFile {
		f, err := openLogFile(path)
		if err == nil {
			writers = append(writers, f)
		}
		fileErr = err
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", path).Msg("Logger initialized")
	return fileErr
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// CommandLogger tags the commands logger with the running command.
func CommandLogger(command string) zerolog.Logger {
	return log.With().Str("component", "softsync.commands").Str("command", command).Logger()
}

// Timed logs the start of operation at debug and returns a func that logs
// its outcome and duration.
func Timed(logger zerolog.Logger, operation string) func(err error) {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func(err error) {
		ev := logger.Debug()
		if err != nil {
			ev = logger.Info().Err(err)
		}
		ev.Str("operation", operation).Dur("duration", time.Since(start)).Msg("Operation finished")
	}
}

// LogFilePath honours XDG_STATE_HOME when set at call time, otherwise
// falls back to the xdg default (~/.local/state).
func LogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	if stateHome == "" {
		return "softsync.log"
	}
	return filepath.Join(stateHome, "softsync", "softsync.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

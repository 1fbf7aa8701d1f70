// Package cli implements the boardplacer command-line interface.
//
// Commands load a project, run the placer, and write the layout back to
// the project and to any requested export formats. The command tree is built
// with cobra; logging goes through charmbracelet/log.
//
// # Commands
//
//   - demo: write a sample amplifier project
//   - place: place a project and export the layout
//   - import: build a project from a KiCad netlist or component/net tables
//   - compare: re-run the placer under heuristic variants
//   - library: list the component library or add DXF footprints to it
//   - config: create or show the application config and settings file
//   - backup: export or restore the config and library
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// turns on the placer's step log. Without it the level comes from the app
// config. Loggers are passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// parseLevel maps a config log level to a logger level, defaulting to info.
func parseLevel(s string) log.Level {
	if s == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

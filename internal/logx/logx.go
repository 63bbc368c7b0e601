// Package logx wires a stumpy-backed logiface.Logger for cmd/pdptw-solve.
// The CORE packages (instance/construct/localsearch/lns/ages/ils/feasibility)
// never import this package or log directly; progress and diagnostics flow
// out through ils.Options.OnProgress and returned errors, and only the CLI
// layer turns those into log lines. Grounded on logiface-stumpy's factory
// (stumpy.L.New/WithStumpy) and Builder chain (Str/Int/Err/Log).
package logx

import (
	"io"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger wraps a *logiface.Logger[*stumpy.Event], exposing only the level
// entry points cmd/pdptw-solve needs.
type Logger struct {
	l *logiface.Logger[*stumpy.Event]
}

// New builds a Logger writing JSON lines to w at level (one of "debug",
// "info", "warn", "error"; unrecognized values fall back to "info").
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		l: stumpy.L.New(
			stumpy.L.WithStumpy(stumpy.WithWriter(w)),
			stumpy.L.WithLevel(parseLevel(level)),
		),
	}
}

func parseLevel(level string) logiface.Level {
	switch level {
	case "debug":
		return logiface.LevelDebug
	case "warn", "warning":
		return logiface.LevelWarning
	case "error", "err":
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}

// Info logs msg at informational level with the given key/value fields
// (alternating string keys and values; an odd trailing key is dropped).
func (lg *Logger) Info(msg string, fields ...any) {
	lg.build(lg.l.Info(), fields).Log(msg)
}

// Debug logs msg at debug level.
func (lg *Logger) Debug(msg string, fields ...any) {
	lg.build(lg.l.Debug(), fields).Log(msg)
}

// Warn logs msg at warning level.
func (lg *Logger) Warn(msg string, fields ...any) {
	lg.build(lg.l.Warning(), fields).Log(msg)
}

// Error logs msg at error level, attaching err.
func (lg *Logger) Error(msg string, err error, fields ...any) {
	b := lg.l.Err().Err(err)
	lg.build(b, fields).Log(msg)
}

func (lg *Logger) build(b *logiface.Builder[*stumpy.Event], fields []any) *logiface.Builder[*stumpy.Event] {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		b = b.Interface(key, fields[i+1])
	}
	return b
}

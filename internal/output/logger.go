package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger writes labelled diagnostics to a single stream. It does no gating of
// its own; callers decide whether a message should be shown.
type Logger struct {
	l *log.Logger
}

// NewLogger returns a logger writing to w, or to stderr when w is nil.
func NewLogger(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Level:           log.DebugLevel,
	})
	if NoColor() {
		l.SetStyles(plainStyles())
	} else {
		l.SetStyles(levelStyles())
	}
	return &Logger{l: l}
}

// Info prints an "Info: " line.
func (l *Logger) Info(msg string) {
	l.l.Info(msg)
}

// Warn prints a "Warning: " line.
func (l *Logger) Warn(msg string) {
	l.l.Warn(msg)
}

// Debug prints a "Debug: " line.
func (l *Logger) Debug(msg string) {
	l.l.Debug(msg)
}

// Fatal prints a "Fatal: " line. Unlike log.Fatal it does not exit; the
// caller owns termination.
func (l *Logger) Fatal(msg string) {
	l.l.Log(log.FatalLevel, msg)
}

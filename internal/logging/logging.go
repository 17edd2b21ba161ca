// Package logging builds the slog logger used across i3xrocks.
//
// Status bars usually run detached from any terminal, under a session
// manager that forwards stderr to the systemd journal. New therefore
// picks the destination from where stderr goes:
//
//   - a journal stream: records are sent natively to journald, with
//     attributes as journal fields;
//   - a terminal: human readable text;
//   - anything else: JSON lines.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"golang.org/x/term"
)

// ParseLevel converts a level name (DEBUG, INFO, WARN, ERROR; any case)
// to a slog.Level. Unknown names yield slog.LevelWarn.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New returns a logger writing records at or above level to stderr, or to
// the journal when stderr is connected to it.
func New(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if ok, err := journal.StderrIsJournalStream(); err == nil && ok && journal.Enabled() {
		return slog.New(NewJournalHandler(opts))
	}
	return NewWriter(os.Stderr, opts)
}

// NewWriter returns a logger writing to w: text when w is a terminal,
// JSON otherwise.
func NewWriter(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if f, ok := w.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

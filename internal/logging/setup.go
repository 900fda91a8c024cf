package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs the process-wide slog handler. Log output goes to stderr
// as text; stdout stays reserved for the report itself. Debug mode lowers
// the handler level to slog.LevelDebug.
func Setup(debug bool) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, debug)))
}

// NewHandler returns the text handler Setup installs, writing to w.
// Split from Setup so tests can capture output.
func NewHandler(w io.Writer, debug bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

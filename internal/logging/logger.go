package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// New creates a configured application logger.
// It writes to Stderr (to separate from Stdout results and JSON-RPC traffic).
// Extra handlers receive every record as well.
func New(level slog.Level, extra ...slog.Handler) *slog.Logger {
	return NewWithWriter(os.Stderr, level, extra...)
}

// NewWithWriter is New with an explicit primary destination.
func NewWithWriter(w io.Writer, level slog.Level, extra ...slog.Handler) *slog.Logger {
	primary := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	})
	if len(extra) == 0 {
		return slog.New(primary)
	}
	handlers := append([]slog.Handler{primary}, extra...)
	return slog.New(slogmulti.Fanout(handlers...))
}

// JSONHandler returns a handler writing JSON records to w, for log files.
func JSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	})
}

// Open builds the logger for the CLI: text on Stderr plus, when path is set,
// JSON lines appended to that file. The returned closer releases the file.
func Open(level slog.Level, path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return New(level), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(level, JSONHandler(f, level)), f, nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// replaceAttr standardizes the 'error' key to 'err'.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

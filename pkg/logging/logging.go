// Package logging configures the process-wide slog logger.
//
// The CLI logs to stderr so that stdout carries only command output:
//
//	logging.SetDefaultCLILogger(os.Stderr, slog.LevelWarn, false, "run_id", id)
//
// Library packages log through slog's default logger and never configure it.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel converts a level name (debug, info, warn, error) into a slog.Level.
// Matching is case-insensitive; "warning" is accepted for warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q", s)
	}
}

// NewLogger returns a logger writing to w at the given level, as JSON or text.
func NewLogger(w io.Writer, level slog.Level, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SetDefaultCLILogger installs a logger writing to w as the process default.
// Every record carries attrs; the CLI passes the run id here.
func SetDefaultCLILogger(w io.Writer, level slog.Level, asJSON bool, attrs ...any) *slog.Logger {
	logger := NewLogger(w, level, asJSON)
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}
	slog.SetDefault(logger)
	return logger
}

// ZKLogger adapts slog to the Printf-style logger expected by the ZooKeeper client.
// Session chatter is only interesting when debugging, so everything goes out at debug.
type ZKLogger struct {
	Logger *slog.Logger
}

// Printf implements zk.Logger.
func (l ZKLogger) Printf(format string, args ...interface{}) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug(fmt.Sprintf(format, args...), "component", "zk")
}

package logger

import (
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Logger is the minimal leveled interface the rest of the service logs
// through. It is an interface so another implementation can be swapped in.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Log is the process-wide logger. It works at info level even before Init
// is called.
var Log Logger = New("info")

// Init replaces the process-wide logger with one filtered to the given
// level name. Empty or unknown names fall back to info.
func Init(level string) {
	Log = New(level)
}

// New builds a console logger filtered to the given level name.
func New(level string) Logger {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "" {
		name = "info"
	}
	logLevel := slog.LevelByName(name)

	var levels slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= logLevel {
			levels = append(levels, lv)
		}
	}

	h := handler.NewConsoleHandler(levels)
	return slog.NewWithHandlers(h)
}

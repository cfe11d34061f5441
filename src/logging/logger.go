// Package logging is the leveled logger shared by the timeline packages and executables.
// Output goes through log/slog with a tint handler so terminal logs stay readable.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LogLevel represents severity.
type LogLevel = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var currentLevel = new(slog.LevelVar)

var baseLogger = newLogger(os.Stderr, false)

func newLogger(w io.Writer, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      currentLevel,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	}))
}

// SetOutput redirects log output; color is disabled for non-terminal writers such as files or buffers.
func SetOutput(w io.Writer, noColor bool) { baseLogger = newLogger(w, noColor) }

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	currentLevel.Set(l)
}

// GetLogLevel returns the current global log level.
func GetLogLevel() LogLevel { return currentLevel.Level() }

// Logger returns the underlying structured logger for callers that want attributes.
func Logger() *slog.Logger { return baseLogger }

func logf(l LogLevel, format string, args ...interface{}) {
	ctx := context.Background()
	if !baseLogger.Enabled(ctx, l) {
		return
	}
	// Plain messages are passed through untouched so literal % in preformatted text survives.
	if len(args) == 0 {
		baseLogger.Log(ctx, l, format)
		return
	}
	baseLogger.Log(ctx, l, fmt.Sprintf(format, args...))
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the duration of a phase at debug level. Use as defer TimeTrack(time.Now(), "label").
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}

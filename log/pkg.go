package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// DefaultContextProvider returns the default context used by context-unaware
// logging functions.
var DefaultContextProvider = context.TODO

// defaultLog is the logger used by the package-level functions.
var defaultLog atomic.Pointer[Logger]

func init() {
	l := Make(os.Stderr)
	defaultLog.Store(&l)
}

// Default returns the package default logger.
func Default() Logger { return *defaultLog.Load() }

// Config replaces the default logger with one derived from it by applying
// opts.
func Config(opts ...Option) {
	l := Default().Wrap(opts...)
	defaultLog.Store(&l)
}

// SetDefault replaces the default logger.
func SetDefault(l Logger) { defaultLog.Store(&l) }

// With returns a new [Logger] derived from the default logger that includes
// the given attributes in each log message.
func With(attrs ...slog.Attr) Logger {
	return Default().With(attrs...)
}

// TraceContext logs at Trace level using the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, 3, LevelTrace, msg, attrs...)
}

// Trace logs at Trace level using the default logger.
func Trace(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), 3, LevelTrace, msg, attrs...)
}

// DebugContext logs at Debug level using the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, 3, LevelDebug, msg, attrs...)
}

// Debug logs at Debug level using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), 3, LevelDebug, msg, attrs...)
}

// InfoContext logs at Info level using the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, 3, LevelInfo, msg, attrs...)
}

// Info logs at Info level using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), 3, LevelInfo, msg, attrs...)
}

// WarnContext logs at Warn level using the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, 3, LevelWarn, msg, attrs...)
}

// Warn logs at Warn level using the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), 3, LevelWarn, msg, attrs...)
}

// ErrorContext logs at Error level using the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, 3, LevelError, msg, attrs...)
}

// Error logs at Error level using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), 3, LevelError, msg, attrs...)
}

// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are immutable values configured at creation time with functional
// options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
//	logger.Info("grammar compiled", slog.Int("rules", 4))
//
// Attributes attached with [Logger.With] are included in every message.
// Values implementing [slog.LogValuer] (such as the errors returned by the
// peg and term packages) are expanded into groups.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. The compilers log their internals at
// Trace level.
//
// # Default logger
//
// The package-level functions ([Info], [DebugContext], ...) use a default
// logger writing text to stderr. [Config] derives a new default from the
// current one, which is how the command-line flags are applied.
package log

// Package log is a small structured logging layer over [log/slog].
//
// A [Logger] is created with [Make] and functional options, and derived
// loggers are made with [Logger.Wrap] (new options) or [Logger.With] (new
// attributes). The zero Logger discards everything.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("none"))
//	logger.Debug("entry rendered", slog.String("kind", "term"))
//
// Five levels are defined, [LevelTrace] through [LevelError]. Text output can
// be colorized with [WithPretty]; JSON output never is.
//
// The package-level functions write through a default logger on standard
// error, reconfigured by [Config].
package log

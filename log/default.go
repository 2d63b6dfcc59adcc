package log

import (
	"context"
	"log/slog"
	"os"
)

// DefaultContextProvider returns the context used by the logging functions and
// methods that do not accept one.
var DefaultContextProvider = context.TODO

var defaultLog = Make(os.Stderr)

// Config reconfigures the package-level logger with opts.
func Config(opts ...Option) {
	defaultLog = defaultLog.Wrap(opts...)
}

// Default returns the package-level logger.
func Default() Logger { return defaultLog }

// With returns a copy of the package-level logger that adds attrs to every
// message.
func With(attrs ...slog.Attr) Logger { return defaultLog.With(attrs...) }

func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.write(ctx, LevelTrace, msg, attrs)
}

func Trace(msg string, attrs ...slog.Attr) {
	defaultLog.write(DefaultContextProvider(), LevelTrace, msg, attrs)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.write(ctx, LevelDebug, msg, attrs)
}

func Debug(msg string, attrs ...slog.Attr) {
	defaultLog.write(DefaultContextProvider(), LevelDebug, msg, attrs)
}

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.write(ctx, LevelInfo, msg, attrs)
}

func Info(msg string, attrs ...slog.Attr) {
	defaultLog.write(DefaultContextProvider(), LevelInfo, msg, attrs)
}

func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.write(ctx, LevelWarn, msg, attrs)
}

func Warn(msg string, attrs ...slog.Attr) {
	defaultLog.write(DefaultContextProvider(), LevelWarn, msg, attrs)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.write(ctx, LevelError, msg, attrs)
}

func Error(msg string, attrs ...slog.Attr) {
	defaultLog.write(DefaultContextProvider(), LevelError, msg, attrs)
}

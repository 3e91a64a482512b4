package errors

import (
	"context"
	"log/slog"
)

// LogHandler is a Handler that writes reports through slog.
type LogHandler struct {
	// Logger receives the reports. Nil means slog.Default().
	Logger *slog.Logger
	// Verbose adds stack traces to the output.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// HandleError logs an Error. Stale references log at debug, native failures
// at warn and everything else at error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	level := slog.LevelError
	switch err.Kind {
	case KindStale, KindTypeMismatch:
		level = slog.LevelDebug
	case KindNative:
		level = slog.LevelWarn
	}
	attrs := []slog.Attr{
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
	}
	if err.ViewID != 0 {
		attrs = append(attrs, slog.Uint64("view", err.ViewID))
	}
	if err.Err != nil {
		attrs = append(attrs, slog.String("err", err.Err.Error()))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().LogAttrs(context.Background(), level, "native runtime error", attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("op", err.Op),
		slog.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().LogAttrs(context.Background(), slog.LevelError, "native runtime panic", attrs...)
}

package event

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Logger is a Sink writing events to a slog.Logger.
type Logger struct {
	Logger *slog.Logger
}

var _ Sink = (*Logger)(nil)

// NewLogger writes events to w, as JSON if json is set, otherwise as text.
// Unless verbose, only SEVERITY_ERROR events are written.
func NewLogger(w io.Writer, verbose bool, json bool) *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelError}
	if verbose {
		opts.Level = slog.LevelInfo
	}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

func (lg *Logger) Emit(ev Event) {
	level := slog.LevelInfo
	if ev.Severity == SEVERITY_ERROR {
		level = slog.LevelError
	}

	attrs := []slog.Attr{
		slog.String("loc", ev.Location.String()),
	}
	if ev.Session != uuid.Nil {
		attrs = append(attrs, slog.String("session", ev.Session.String()))
	}
	if ev.Ip != 0 {
		attrs = append(attrs, slog.Int("ip", ev.Ip))
	}
	if ev.Err != nil {
		attrs = append(attrs, slog.String("err", ev.Err.Error()))
	}

	lg.Logger.LogAttrs(context.Background(), level, ev.Message, attrs...)
}

package common

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LogLevel represents logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	default:
		return "info"
	}
}

// ToSlogLevel converts LogLevel to slog.Level
func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LogLevelError:
		return slog.LevelError
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Logger wraps slog with the level it was built for and a masker that is
// applied to every attribute before it reaches the handler.
type Logger struct {
	*slog.Logger
	level  LogLevel
	masker *Masker
}

// NewLogger creates a text logger writing to w (stderr when nil).
func NewLogger(level LogLevel, w io.Writer) *Logger {
	return newLogger(level, func(opts *slog.HandlerOptions) slog.Handler {
		return slog.NewTextHandler(orStderr(w), opts)
	})
}

// NewJSONLogger creates a structured logger with JSON output
func NewJSONLogger(level LogLevel, w io.Writer) *Logger {
	return newLogger(level, func(opts *slog.HandlerOptions) slog.Handler {
		return slog.NewJSONHandler(orStderr(w), opts)
	})
}

// NewColorLogger creates a logger using ColorHandler. Colors are only emitted
// when w is a terminal unless force is set.
func NewColorLogger(level LogLevel, w io.Writer, force bool) *Logger {
	return newLogger(level, func(opts *slog.HandlerOptions) slog.Handler {
		h := NewColorHandler(orStderr(w), opts)
		if force {
			h.SetColorEnabled(true)
		}
		return h
	})
}

func newLogger(level LogLevel, build func(*slog.HandlerOptions) slog.Handler) *Logger {
	masker := NewMasker()
	opts := &slog.HandlerOptions{Level: level.ToSlogLevel()}
	h := &maskingHandler{next: build(opts), masker: masker}
	return &Logger{Logger: slog.New(h), level: level, masker: masker}
}

func orStderr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// Level returns the current log level
func (l *Logger) Level() LogLevel {
	return l.level
}

// EnableMasking toggles masking for this logger and every logger derived from it.
func (l *Logger) EnableMasking(enabled bool) {
	l.masker.SetEnabled(enabled)
}

// WithComponent returns a logger with component context
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component), level: l.level, masker: l.masker}
}

// WithProject returns a logger with Vercel project context
func (l *Logger) WithProject(projectID string) *Logger {
	return &Logger{Logger: l.Logger.With("project_id", projectID), level: l.level, masker: l.masker}
}

// WithRequest returns a logger with HTTP request context
func (l *Logger) WithRequest(method, url string) *Logger {
	return &Logger{Logger: l.Logger.With("method", method, "url", url), level: l.level, masker: l.masker}
}

// maskingHandler masks attribute values before delegating to next.
type maskingHandler struct {
	next   slog.Handler
	masker *Masker
}

func (h *maskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *maskingHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.masker.IsEnabled() {
		return h.next.Handle(ctx, r)
	}
	out := slog.NewRecord(r.Time, r.Level, h.masker.MaskString(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.masker.MaskAttr(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *maskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.masker.MaskAttr(a)
	}
	return &maskingHandler{next: h.next.WithAttrs(masked), masker: h.masker}
}

func (h *maskingHandler) WithGroup(name string) slog.Handler {
	return &maskingHandler{next: h.next.WithGroup(name), masker: h.masker}
}

// Global default logger instance
var defaultLogger = NewLogger(LogLevelInfo, nil)

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// GetLogger returns the default logger
func GetLogger() *Logger {
	return defaultLogger
}

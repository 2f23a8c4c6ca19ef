package ckks

import (
	"fmt"
	"log/slog"
	"os"
)

// LogLevel is the severity of a log record, matching the teacher
// client's own leveled-logger convention.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Logger receives structured log records from a Handle. Implementations
// must not retain fields beyond the call. Never passed plaintext
// slots, secret key material, or sampled noise.
type Logger interface {
	Log(level LogLevel, msg string, fields map[string]any)
}

// NopLogger discards every record. It is the default so a caller that
// doesn't configure a Logger pays nothing.
type NopLogger struct{}

func (NopLogger) Log(LogLevel, string, map[string]any) {}

// SlogLogger adapts the package's Logger contract onto log/slog, the
// same wrapping the teacher client uses for its own leveled logger
// (pkg/log.Logger wraps *slog.Logger and hands out per-subsystem child
// loggers via Module). Here the "module" is fixed to "ckks" and the
// prime index, when present in fields, rides along as an ordinary
// slog attribute rather than a dedicated Module() call per prime.
type SlogLogger struct {
	inner *slog.Logger
}

// NewSlogLogger builds a SlogLogger writing JSON records to w at or
// above min. A nil w defaults to os.Stderr, matching the teacher's
// own New(level) constructor.
func NewSlogLogger(w *os.File, min LogLevel) SlogLogger {
	if w == nil {
		w = os.Stderr
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel(min)})
	return SlogLogger{inner: slog.New(h).With("module", "ckks")}
}

func (s SlogLogger) Log(level LogLevel, msg string, fields map[string]any) {
	args := make([]any, 0, 2*len(fields))
	for k, v := range fields {
		args = append(args, k, v)
	}
	switch level {
	case LevelDebug:
		s.inner.Debug(msg, args...)
	case LevelWarn:
		s.inner.Warn(msg, args...)
	case LevelError:
		s.inner.Error(msg, args...)
	default:
		s.inner.Info(msg, args...)
	}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

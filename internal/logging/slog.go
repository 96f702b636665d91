package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// SlogLogger is the default console backend ("slog" writes JSON lines,
// "slog-text" writes key=value lines).
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps l; a nil l falls back to slog.Default().
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{l: l}
}

func newSlogBackend(w io.Writer, level string, text bool) (*SlogLogger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("slog level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if text {
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, opts))), nil
	}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(w, opts))), nil
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

// With keeps the handler and level of s.
func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/masq"
)

// Format selects the slog handler.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// redactedFields are attribute keys that never reach the log output.
var redactedFields = []string{
	"password",
	"access_token",
	"refresh_token",
	"jwt_secret",
	"secret_key",
	"Password",
	"AccessToken",
	"RefreshToken",
}

type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// New builds a slog-backed Logger writing to w. Struct fields tagged
// `masq:"secret"` and the well-known credential keys are redacted.
func New(w io.Writer, format Format, level slog.Level) *SlogLogger {
	opts := []masq.Option{masq.WithTag("secret")}
	for _, f := range redactedFields {
		opts = append(opts, masq.WithFieldName(f))
	}

	hopts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: masq.New(opts...),
	}

	var h slog.Handler
	switch format {
	case FormatText:
		h = slog.NewTextHandler(w, hopts)
	default:
		h = slog.NewJSONHandler(w, hopts)
	}
	return NewSlogLogger(slog.New(h))
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
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

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

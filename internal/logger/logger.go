// Package logger wires log/slog to the service configuration and
// threads the request ID through contexts so handler and middleware
// logs for one request can be correlated.
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/noamsilver/luach-api/internal/config"
)

type contextKey string

// requestIDKey carries the per-request ID placed by the request-ID
// middleware.
const requestIDKey contextKey = "request_id"

// Setup builds the process logger from LOG_LEVEL and LOG_FORMAT and
// installs it as the slog default. Call once at startup, before
// anything logs.
func Setup(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{
		Level: level,
		// Source locations only at debug; the engine is pure math and
		// production logs don't need file:line noise.
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// WithRequestID stores the request ID in the context for FromContext.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// FromContext returns the default logger tagged with the context's
// request ID, when one is present.
func FromContext(ctx context.Context) *slog.Logger {
	log := slog.Default()
	if id := RequestID(ctx); id != "" {
		log = log.With(slog.String("request_id", id))
	}
	return log
}

// Error logs err at error level with the context's request ID attached.
func Error(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{slog.Any("error", err)}, args...)
	FromContext(ctx).ErrorContext(ctx, msg, allArgs...)
}

package logging

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"page-relay/internal/domain/ports"
)

// ZapLogger is an adapter around zap.SugaredLogger implementing ports.Logger.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

var _ ports.Logger = (*ZapLogger)(nil)

// New creates a new ZapLogger.
func New(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		return &ZapLogger{}
	}
	return &ZapLogger{logger: logger.Sugar()}
}

// NewNop returns a logger that discards everything.
func NewNop() *ZapLogger {
	return New(zap.NewNop())
}

// Build creates a zap.Logger for the given level. Production JSON output is used
// unless the level is debug, which switches to the development console encoder.
func Build(level string) (*zap.Logger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.MessageKey = "message"

	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// Info logs an informational message.
func (l *ZapLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Infow(msg, withRequestID(ctx, args)...)
}

// Warn logs a warning.
func (l *ZapLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Warnw(msg, withRequestID(ctx, args)...)
}

// Error logs an error message.
func (l *ZapLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Errorw(msg, withRequestID(ctx, args)...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() {
	if l.logger != nil {
		_ = l.logger.Sync()
	}
}

type requestIDKey struct{}

// WithRequestID stores the request id so every entry logged with ctx carries it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func withRequestID(ctx context.Context, args []any) []any {
	id := RequestID(ctx)
	if id == "" {
		return args
	}
	return append([]any{"request_id", id}, args...)
}

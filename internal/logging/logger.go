package logging

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type requestIDKey struct{}

// New builds the process logger. Production environments get JSON output,
// everything else the console encoder.
func New(level, env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// WithRequestID stores the request ID on a standard context.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request ID from a standard context.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger provides request-scoped structured logging for services
type Logger struct {
	z *zap.Logger
}

// NewLogger creates a logger bound to the request in ctx, on top of the
// global zap logger.
func NewLogger(ctx context.Context) *Logger {
	return FromBase(ctx, zap.L())
}

// FromBase is NewLogger with an explicit base logger.
func FromBase(ctx context.Context, base *zap.Logger) *Logger {
	if base == nil {
		base = zap.NewNop()
	}
	rid := RequestID(ctx)
	if rid == "" {
		rid = "unknown"
	}
	return &Logger{z: base.With(zap.String("request_id", rid))}
}

// Zap exposes the underlying logger for callers that want typed fields.
func (l *Logger) Zap() *zap.Logger {
	return l.z
}

func (l *Logger) LogError(operation string, err error) {
	l.z.Error("operation failed", zap.String("operation", operation), zap.Error(err))
}

func (l *Logger) LogErrorf(operation string, format string, args ...any) {
	l.z.Error(fmt.Sprintf(format, args...), zap.String("operation", operation))
}

func (l *Logger) LogInfo(operation string, message string) {
	l.z.Info(message, zap.String("operation", operation))
}

func (l *Logger) LogInfof(operation string, format string, args ...any) {
	l.z.Info(fmt.Sprintf(format, args...), zap.String("operation", operation))
}

func (l *Logger) LogWarn(operation string, message string) {
	l.z.Warn(message, zap.String("operation", operation))
}

func (l *Logger) LogWarnf(operation string, format string, args ...any) {
	l.z.Warn(fmt.Sprintf(format, args...), zap.String("operation", operation))
}

func (l *Logger) LogDebugf(operation string, format string, args ...any) {
	l.z.Debug(fmt.Sprintf(format, args...), zap.String("operation", operation))
}

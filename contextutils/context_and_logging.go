package contextutils

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKey struct{}

var (
	// Used when no logger is attached to the context, so callers never
	// receive a nil logger.
	fallbackLogger *zap.SugaredLogger

	// Atomic level shared by loggers built here; setting it changes log
	// output dynamically.
	level zap.AtomicLevel
)

func init() {
	level = zap.NewAtomicLevel()
	config := zap.NewDevelopmentConfig()
	config.Level = level
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if logger, err := config.Build(); err != nil {
		fallbackLogger = zap.NewNop().Sugar()
	} else {
		fallbackLogger = logger.Sugar()
	}
}

func SetFallbackLogger(logger *zap.SugaredLogger) {
	fallbackLogger = logger
}

// WithLogger returns a copy of the parent context carrying a named child of
// the context's current logger.
func WithLogger(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, loggerKey{}, LoggerFrom(ctx).Named(name))
}

// WithLoggerValues returns a copy of the parent context whose logger logs
// the given additional key-value pairs.
func WithLoggerValues(ctx context.Context, meta ...interface{}) context.Context {
	return context.WithValue(ctx, loggerKey{}, LoggerFrom(ctx).With(meta...))
}

// LoggerFrom returns the logger stored in the context, or the fallback
// logger when none is set.
func LoggerFrom(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
			return logger
		}
	}
	return fallbackLogger
}

func SetLogLevel(l zapcore.Level) {
	level.SetLevel(l)
}

func SetLogLevelFromString(logLevel string) {
	switch logLevel {
	case "debug":
		SetLogLevel(zapcore.DebugLevel)
	case "warn":
		SetLogLevel(zapcore.WarnLevel)
	case "error":
		SetLogLevel(zapcore.ErrorLevel)
	default:
		SetLogLevel(zapcore.InfoLevel)
	}
}

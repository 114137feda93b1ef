package logger

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loggerContextKey is the context key under which a request-scoped logger is stored.
type loggerContextKey struct{}

//nolint:gochecknoglobals // The package keeps a single process-wide logger, shared by all components.
var (
	// globalLevel is the level shared by loggers created without an explicit level.
	globalLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	// globalLogger is the process-wide logger used when the context carries none.
	globalLogger = New(globalLevel)
)

// New creates a new sugared Zap logger writing to stderr.
// If levelEnabler is nil, the package-wide level is used,
// so the logger follows later SetLevel calls.
func New(levelEnabler zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	if levelEnabler == nil {
		levelEnabler = globalLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		levelEnabler)

	return zap.New(core, options...).Sugar()
}

// ParseLogLevel parses a textual log level (case-insensitive, surrounding
// whitespace ignored) into a Zap level. The second return value reports
// whether the input was recognized; unrecognized input yields InfoLevel.
func ParseLogLevel(level string) (zapcore.Level, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(level))

	// zapcore.ParseLevel treats "" as InfoLevel, but a blank setting is
	// not a recognized level here.
	if trimmed == "" {
		return zapcore.InfoLevel, false
	}

	parsed, err := zapcore.ParseLevel(trimmed)
	if err != nil {
		return zapcore.InfoLevel, false
	}

	return parsed, true
}

// Logger returns the process-wide logger.
func Logger() *zap.SugaredLogger {
	return globalLogger
}

// SetLogger replaces the process-wide logger.
func SetLogger(logger *zap.SugaredLogger) {
	if logger == nil {
		return
	}

	globalLogger = logger
}

// Level returns the current package-wide log level.
func Level() zapcore.Level {
	return globalLevel.Level()
}

// SetLevel changes the package-wide log level.
func SetLevel(level zapcore.Level) {
	globalLevel.SetLevel(level)
}

// IsDebugLevel reports whether debug-level logging is currently enabled.
func IsDebugLevel() bool {
	return globalLevel.Enabled(zapcore.DebugLevel)
}

// ToContext returns a copy of ctx carrying the provided logger.
// Components further down the call chain will use it instead of the global one.
func ToContext(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// fromContext extracts the logger from the context,
// falling back to the process-wide logger.
func fromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerContextKey{}).(*zap.SugaredLogger); ok && logger != nil {
		return logger
	}

	return globalLogger
}

// Debug logs a message at debug level.
func Debug(ctx context.Context, args ...any) {
	fromContext(ctx).Debug(args...)
}

// Debugf logs a formatted message at debug level.
func Debugf(ctx context.Context, format string, args ...any) {
	fromContext(ctx).Debugf(format, args...)
}

// DebugKV logs a message at debug level with additional key-value pairs.
func DebugKV(ctx context.Context, message string, kvs ...any) {
	fromContext(ctx).Debugw(message, kvs...)
}

// Info logs a message at info level.
func Info(ctx context.Context, args ...any) {
	fromContext(ctx).Info(args...)
}

// Infof logs a formatted message at info level.
func Infof(ctx context.Context, format string, args ...any) {
	fromContext(ctx).Infof(format, args...)
}

// InfoKV logs a message at info level with additional key-value pairs.
func InfoKV(ctx context.Context, message string, kvs ...any) {
	fromContext(ctx).Infow(message, kvs...)
}

// Warn logs a message at warn level.
func Warn(ctx context.Context, args ...any) {
	fromContext(ctx).Warn(args...)
}

// Warnf logs a formatted message at warn level.
func Warnf(ctx context.Context, format string, args ...any) {
	fromContext(ctx).Warnf(format, args...)
}

// WarnKV logs a message at warn level with additional key-value pairs.
func WarnKV(ctx context.Context, message string, kvs ...any) {
	fromContext(ctx).Warnw(message, kvs...)
}

// Error logs a message at error level.
func Error(ctx context.Context, args ...any) {
	fromContext(ctx).Error(args...)
}

// Errorf logs a formatted message at error level.
func Errorf(ctx context.Context, format string, args ...any) {
	fromContext(ctx).Errorf(format, args...)
}

// ErrorKV logs a message at error level with additional key-value pairs.
func ErrorKV(ctx context.Context, message string, kvs ...any) {
	fromContext(ctx).Errorw(message, kvs...)
}

// Fatal logs a message at fatal level and terminates the process.
func Fatal(ctx context.Context, args ...any) {
	fromContext(ctx).Fatal(args...)
}

// Fatalf logs a formatted message at fatal level and terminates the process.
func Fatalf(ctx context.Context, format string, args ...any) {
	fromContext(ctx).Fatalf(format, args...)
}

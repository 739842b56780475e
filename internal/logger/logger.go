package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a zap-backed structured logger exposing the object helpers the
// highbond client logs through.
type Logger struct {
	z *zap.Logger
}

// New builds a JSON zap logger writing to stdout at the given level.
func New(level string) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter is New with an explicit sink.
func NewWithWriter(level string, w io.Writer) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(zapcore.Lock(zapcore.AddSync(w))),
		ParseLevel(level),
	)

	return &Logger{z: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))}
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Zap exposes the underlying logger.
func (l *Logger) Zap() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.z
}

// Close flushes any buffered entries.
func (l *Logger) Close() error {
	if l == nil || l.z == nil {
		return nil
	}
	return l.z.Sync()
}

// Minimal object logging helpers -------------------------------------------------
// These log the given object as a single structured field named `key`.

func (l *Logger) InfoObj(msg, key string, obj interface{}) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Info(msg, zap.Any(key, obj))
}

func (l *Logger) DebugObj(msg, key string, obj interface{}) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Debug(msg, zap.Any(key, obj))
}

func (l *Logger) WarnObj(msg, key string, obj interface{}) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Warn(msg, zap.Any(key, obj))
}

func (l *Logger) ErrorObj(msg, key string, obj interface{}) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Error(msg, zap.Any(key, obj))
}

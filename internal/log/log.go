package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

var (
	mu       sync.Mutex
	logger   *zap.SugaredLogger
	level    = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	output   zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	initOnce sync.Once
)

// initLogger builds the global logger writing console lines to stderr:
//
//	2025-01-01T00:00:00.000Z	INFO	msg	{"key": "value"}
func initLogger() {
	initOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		build()
	})
}

func build() {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), output, level)
	logger = zap.New(core).Sugar()
}

// SetLevel changes the minimum level that is written.
func SetLevel(l Level) {
	initLogger()
	switch l {
	case LevelDebug:
		level.SetLevel(zapcore.DebugLevel)
	case LevelError:
		level.SetLevel(zapcore.ErrorLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

// ParseLevel maps config values such as "debug" or "error" to a Level.
// Unknown values are INFO.
func ParseLevel(s string) Level {
	l, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return LevelInfo
	}
	switch {
	case l <= zapcore.DebugLevel:
		return LevelDebug
	case l >= zapcore.ErrorLevel:
		return LevelError
	}
	return LevelInfo
}

// SetOutput redirects log lines to w. Used by tests.
func SetOutput(w io.Writer) {
	initLogger()
	mu.Lock()
	defer mu.Unlock()
	output = zapcore.Lock(zapcore.AddSync(w))
	build()
}

func get() *zap.SugaredLogger {
	initLogger()
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func Debug(msg string, kv ...any) {
	get().Debugw(msg, kv...)
}

func Info(msg string, kv ...any) {
	get().Infow(msg, kv...)
}

func Error(msg string, err error, kv ...any) {
	// Prepend error into key-value list.
	extended := append([]any{"err", err}, kv...)
	get().Errorw(msg, extended...)
}

// Sync flushes buffered entries; call before exiting.
func Sync() {
	_ = get().Sync()
}

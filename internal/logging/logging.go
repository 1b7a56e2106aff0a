// Package logging wraps zap for the whole application.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *Logger
	raw    *zap.Logger

	// returned by L before Init
	noopLogger = &Logger{zap.NewNop().Sugar()}

	atomicLevel zap.AtomicLevel
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// With adds structured fields to the logger and returns a new instance.
func (l *Logger) With(args ...interface{}) *Logger {
	if l == nil {
		return noopLogger
	}
	return &Logger{l.SugaredLogger.With(args...)}
}

// Desugar returns the underlying zap.Logger.
func (l *Logger) Desugar() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.SugaredLogger.Desugar()
}

// L returns the global logger or a no-op fallback if uninitialized.
func L() *Logger {
	if logger == nil {
		return noopLogger
	}
	return logger
}

// Option configures Init.
type Option func(*options)

type options struct {
	stderr bool
}

// FileOnly keeps dev mode off stderr. Full-screen terminal apps need it.
func FileOnly() Option {
	return func(o *options) { o.stderr = false }
}

// Init initializes the global logger.
//
// SPOTLIGHT_ENV selects the format:
//
//   - dev  → human-readable console lines on stderr and in <dir>/app-debug.log
//   - prod → JSON lines in <dir>/app.log
//
// LOG_LEVEL overrides the level; it defaults to debug in dev and info in prod.
// SPOTLIGHT_LOG_DIR overrides the directory, which otherwise follows XDG_STATE_HOME.
func Init(appName string, opts ...Option) {
	o := options{stderr: true}
	for _, opt := range opts {
		opt(&o)
	}
	mode := detectMode()
	logPath := selectLogPath(appName, mode)

	atomicLevel = zap.NewAtomicLevelAt(detectLogLevel())

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    20, // MB
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var core zapcore.Core
	switch {
	case mode == "dev" && o.stderr:
		enc := zapcore.NewConsoleEncoder(encoderCfg)
		core = zapcore.NewTee(
			zapcore.NewCore(enc, writer, atomicLevel),
			zapcore.NewCore(enc, zapcore.Lock(os.Stderr), atomicLevel),
		)
	case mode == "dev":
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), writer, atomicLevel)
	default:
		core = zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, atomicLevel)
	}

	raw = zap.New(core, zap.AddCaller())
	logger = &Logger{raw.Sugar()}

	logger.Infof("logger initialized in %s mode. Writing to %s", mode, logPath)
}

// Sync flushes any buffered log entries.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// InitTest creates a lightweight logger for tests that logs to stdout.
func InitTest() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{"stdout"}
	raw, _ = cfg.Build(zap.AddCaller())
	logger = &Logger{raw.Sugar()}
}

// SetLevel changes the log level at runtime.
func SetLevel(level zapcore.Level) {
	if atomicLevel != (zap.AtomicLevel{}) {
		atomicLevel.SetLevel(level)
	}
}

func detectMode() string {
	switch strings.ToLower(os.Getenv("SPOTLIGHT_ENV")) {
	case "dev", "development":
		return "dev"
	default:
		return "prod"
	}
}

func selectLogPath(appName, mode string) string {
	fileName := "app.log"
	if mode == "dev" {
		fileName = "app-debug.log"
	}

	dirs := []string{os.Getenv("SPOTLIGHT_LOG_DIR")}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, appName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "state", appName))
	}
	dirs = append(dirs, filepath.Join(os.TempDir(), appName))

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err == nil {
			return filepath.Join(dir, fileName)
		}
	}
	return filepath.Join(os.TempDir(), fileName)
}

func detectLogLevel() zapcore.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "info":
		return zap.InfoLevel
	default:
		if detectMode() == "dev" {
			return zap.DebugLevel
		}
		return zap.InfoLevel
	}
}

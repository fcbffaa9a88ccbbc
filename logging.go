package pageflow

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logMu     sync.Mutex
	logOutput io.Writer = os.Stderr
	logFile   *os.File
	logger    *slog.Logger
	levelVar  = newLevelVar()
)

func newLevelVar() *slog.LevelVar {
	lv := &slog.LevelVar{}
	lv.Set(slog.LevelWarn)
	if os.Getenv(envDebug) != "" {
		lv.Set(slog.LevelDebug)
	}
	return lv
}

// Logger returns the package logger. It writes JSON records to stderr unless
// redirected with SetLogOutput or SetLogPath.
func Logger() *slog.Logger {
	logMu.Lock()
	defer logMu.Unlock()
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{Level: levelVar}))
	}
	return logger
}

// SetLogOutput redirects the package logger to w. A nil w restores stderr.
func SetLogOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	logOutput = w
	logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// SetLogPath tees log output to stderr and the file at path, creating parent
// directories as needed. On failure the logger keeps its current output.
func SetLogPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return err
	}
	CloseLogger()
	logMu.Lock()
	logFile = f
	logMu.Unlock()
	SetLogOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

// CloseLogger closes the file opened by SetLogPath, if any.
func CloseLogger() {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
		logOutput = os.Stderr
		logger = nil
	}
}

// SetLogLevel sets the minimum level of the package logger.
func SetLogLevel(level slog.Level) {
	levelVar.Set(level)
}

// SetRawLogLevel parses "debug", "info", "warn" or "error". Unknown values
// select info.
func SetRawLogLevel(raw string) {
	var level slog.Level
	switch strings.ToLower(raw) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	levelVar.Set(level)
}

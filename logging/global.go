// Package logging sets up slog for the medcalc command: text records on
// the console and, when a log directory is configured, JSON records in
// weekly rotating files.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/giygas/medcalc/config"
)

// Options configures Setup.
type Options struct {
	Env            config.Environment
	Level          string // overrides the environment's console level
	Verbose        bool
	Dir            string // empty disables file logging
	RetentionWeeks int
	MaxFileSize    int64
	Console        io.Writer // defaults to os.Stderr
}

type LoggingService struct {
	Logger *slog.Logger
	file   *RotatingFile
}

// Close closes the log file, if any.
func (s *LoggingService) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

var (
	DefaultLoggingService *LoggingService
	mu                    sync.RWMutex
)

// parseLogLevel maps a level name to a slog level, defaulting to info.
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetConsoleLogLevel returns the console level for an environment. Tests
// stay quiet unless verbose, whatever the configured level; elsewhere an
// explicit level wins over the environment default.
func GetConsoleLogLevel(env config.Environment, level string, verbose bool) slog.Level {
	if env == config.EnvTest {
		if verbose {
			return slog.LevelInfo
		}
		return slog.LevelError
	}
	if level != "" {
		return parseLogLevel(level)
	}
	switch env {
	case config.EnvProduction, config.EnvStaging:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// GetFileLogLevel returns the level for the log file, which keeps everything.
func GetFileLogLevel() slog.Level {
	return slog.LevelDebug
}

// Setup builds a logger from opts. When the log directory cannot be used
// the logger falls back to the console and reports the problem there.
func Setup(opts Options) *LoggingService {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	consoleHandler := slog.NewTextHandler(console, &slog.HandlerOptions{
		Level: GetConsoleLogLevel(opts.Env, opts.Level, opts.Verbose),
	})

	if opts.Dir == "" {
		return &LoggingService{Logger: slog.New(consoleHandler)}
	}

	file, err := OpenRotatingFile(opts.Dir, opts.RetentionWeeks, opts.MaxFileSize)
	if err != nil {
		logger := slog.New(consoleHandler)
		logger.Error("Failed to open log directory, logging to console only", "dir", opts.Dir, "error", err)
		return &LoggingService{Logger: logger}
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: GetFileLogLevel(),
	})
	return &LoggingService{
		Logger: slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}}),
		file:   file,
	}
}

// InitLogger replaces the global logger, closing the previous one, and
// makes it the slog default.
func InitLogger(opts Options) {
	service := Setup(opts)

	mu.Lock()
	previous := DefaultLoggingService
	DefaultLoggingService = service
	mu.Unlock()

	_ = previous.Close()
	slog.SetDefault(service.Logger)
}

// Close closes the global logger's file.
func Close() error {
	mu.RLock()
	defer mu.RUnlock()
	return DefaultLoggingService.Close()
}

func logger(level slog.Level) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		// Fallback to console logger if not initialized
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	return DefaultLoggingService.Logger
}

func Info(msg string, args ...any) {
	logger(slog.LevelInfo).Info(msg, args...)
}

func Error(msg string, args ...any) {
	logger(slog.LevelError).Error(msg, args...)
}

func Warn(msg string, args ...any) {
	logger(slog.LevelWarn).Warn(msg, args...)
}

// Debug is dropped by the fallback logger, which logs at info.
func Debug(msg string, args ...any) {
	logger(slog.LevelInfo).Debug(msg, args...)
}

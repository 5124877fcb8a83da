package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/giygas/medcalc/config"
)

// resetForTest installs a logger for the duration of a test and restores
// the previous one afterwards.
func resetForTest(t *testing.T, opts Options) {
	t.Helper()

	mu.RLock()
	previous := DefaultLoggingService
	mu.RUnlock()
	previousDefault := slog.Default()

	InitLogger(opts)
	t.Cleanup(func() {
		mu.Lock()
		current := DefaultLoggingService
		DefaultLoggingService = previous
		mu.Unlock()
		_ = current.Close()
		slog.SetDefault(previousDefault)
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLogLevel(tt.input)
			if got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGetConsoleLogLevel(t *testing.T) {
	tests := []struct {
		name        string
		env         config.Environment
		logLevelStr string
		verbose     bool
		expected    slog.Level
	}{
		{"dev defaults to info", config.EnvDevelopment, "", false, slog.LevelInfo},
		{"test quiet defaults to error", config.EnvTest, "", false, slog.LevelError},
		{"test verbose defaults to info", config.EnvTest, "", true, slog.LevelInfo},
		{"prod defaults to warn", config.EnvProduction, "", false, slog.LevelWarn},
		{"staging defaults to warn", config.EnvStaging, "", false, slog.LevelWarn},
		{"prod with debug override", config.EnvProduction, "debug", false, slog.LevelDebug},
		{"dev with error override", config.EnvDevelopment, "error", false, slog.LevelError},
		{"test with debug override (ignored)", config.EnvTest, "debug", false, slog.LevelError},
		{"test with debug override (ignored) verbose", config.EnvTest, "debug", true, slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetConsoleLogLevel(tt.env, tt.logLevelStr, tt.verbose)
			if got != tt.expected {
				t.Errorf("GetConsoleLogLevel(%v, %q, %v) = %v, want %v", tt.env, tt.logLevelStr, tt.verbose, got, tt.expected)
			}
		})
	}
}

func TestGetFileLogLevel(t *testing.T) {
	got := GetFileLogLevel()
	if got != slog.LevelDebug {
		t.Errorf("GetFileLogLevel() = %v, want %v", got, slog.LevelDebug)
	}
}

func TestSetup_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	service := Setup(Options{Env: config.EnvDevelopment, Console: &console})
	defer func() { _ = service.Close() }()

	service.Logger.Info("calculator run", "calculator", "bmi")
	service.Logger.Debug("hidden")

	out := console.String()
	if !strings.Contains(out, "calculator run") || !strings.Contains(out, "calculator=bmi") {
		t.Errorf("console output = %q, want the info record", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record reached an info console: %q", out)
	}
}

func TestSetup_WithFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	service := Setup(Options{
		Env:            config.EnvProduction,
		Dir:            dir,
		RetentionWeeks: 2,
		MaxFileSize:    1024 * 1024,
		Console:        &console,
	})

	service.Logger.Info("only in the file")
	service.Logger.Warn("in both")
	if err := service.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, filePrefix+weekKey(time.Now())+".log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"only in the file"`) {
		t.Errorf("log file = %q, want the JSON info record", content)
	}
	if strings.Contains(console.String(), "only in the file") {
		t.Error("prod console should drop info records")
	}
	if !strings.Contains(console.String(), "in both") {
		t.Error("prod console should keep warn records")
	}
}

func TestSetup_BadDirectoryFallsBack(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var console bytes.Buffer
	service := Setup(Options{Dir: filepath.Join(blocker, "logs"), RetentionWeeks: 1, Console: &console})
	if service.file != nil {
		t.Error("expected no log file when the directory cannot be created")
	}
	if !strings.Contains(console.String(), "Failed to open log directory") {
		t.Errorf("console output = %q, want the fallback notice", console.String())
	}
}

func TestGlobalLoggingService(t *testing.T) {
	dir := t.TempDir()
	resetForTest(t, Options{Env: config.EnvTest, Dir: dir, RetentionWeeks: 2, MaxFileSize: 100 * 1024 * 1024})

	if DefaultLoggingService == nil {
		t.Fatal("DefaultLoggingService was not initialized")
	}

	Info("Info message")
	Error("Error message")
	Warn("Warning message")
	Debug("Debug message")

	content, err := os.ReadFile(filepath.Join(dir, filePrefix+weekKey(time.Now())+".log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	for _, msg := range []string{"Info message", "Error message", "Warning message", "Debug message"} {
		if !strings.Contains(string(content), msg) {
			t.Errorf("log file is missing %q", msg)
		}
	}
}

func TestInitLogger_ReplacesPrevious(t *testing.T) {
	first := t.TempDir()
	resetForTest(t, Options{Env: config.EnvTest, Dir: first, RetentionWeeks: 1})
	previous := DefaultLoggingService

	InitLogger(Options{Env: config.EnvTest})
	if DefaultLoggingService == previous {
		t.Fatal("InitLogger did not replace the service")
	}
	if previous.file.file != nil {
		t.Error("previous log file was not closed")
	}
}

func TestFallbackLogger(t *testing.T) {
	mu.Lock()
	saved := DefaultLoggingService
	DefaultLoggingService = nil
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		DefaultLoggingService = saved
		mu.Unlock()
	})

	// Must not panic without a configured logger.
	Info("fallback info")
	Debug("fallback debug")
	if err := Close(); err != nil {
		t.Errorf("Close() without a logger = %v", err)
	}
}

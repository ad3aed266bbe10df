// Package logging provides file logging for the hypetrigger CLI and core.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Level represents the logging level.
type Level int

const (
	// LevelInfo is the default logging level.
	LevelInfo Level = iota
	// LevelDebug enables verbose debug logging, including forwarded decoder
	// stderr lines.
	LevelDebug
)

// Logger wraps the standard logger with level filtering and file output.
// A nil *Logger is a valid, fully silent logger: every method is a no-op,
// so a disabled logger (-no-log) can be passed around freely.
type Logger struct {
	level    Level
	logger   *log.Logger
	file     *os.File
	filePath string
	runID    string
}

// Setup creates a new logger that writes to a timestamped log file under
// logDir. Returns nil if logging is disabled (noLog=true). Each run is
// tagged with a short UUID so log lines from concurrent runs against the
// same logDir can be correlated back to one invocation.
func Setup(logDir string, verbose, noLog bool) (*Logger, error) {
	if noLog {
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	runID := uuid.NewString()
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("hypetrigger_run_%s_%s.log", timestamp, runID[:8])
	filePath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	level := LevelInfo
	if verbose {
		level = LevelDebug
	}

	l := &Logger{
		level:    level,
		logger:   log.New(file, "", log.LstdFlags),
		file:     file,
		filePath: filePath,
		runID:    runID,
	}

	l.Info("hypetrigger run starting (run=%s)", runID)
	if verbose {
		l.Info("debug level logging enabled")
	}
	l.Info("log file: %s", filePath)

	return l, nil
}

// RunID returns the UUID generated for this logger's run, or an empty
// string for a nil (disabled) logger.
func (l *Logger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FilePath returns the path to the log file.
func (l *Logger) FilePath() string {
	if l == nil {
		return ""
	}
	return l.filePath
}

// Info logs an info-level message.
func (l *Logger) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Printf("[INFO] "+format, args...)
}

// Debug logs a debug-level message (only if verbose mode is enabled).
func (l *Logger) Debug(format string, args ...any) {
	if l == nil || l.level < LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] "+format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Printf("[WARN] "+format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Printf("[ERROR] "+format, args...)
}

// OnDecoderStderr is a line sink suitable for the decoder's stderr parser:
// it forwards every line to Debug, so decoder chatter only reaches the
// log file when verbose logging is enabled.
func (l *Logger) OnDecoderStderr(line string) {
	l.Debug("decoder: %s", line)
}

// Writer returns an io.Writer that writes to the log file. Useful for
// redirecting other loggers or capturing output.
func (l *Logger) Writer() io.Writer {
	if l == nil || l.file == nil {
		return io.Discard
	}
	return l.file
}
